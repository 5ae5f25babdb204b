package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/veldroid/tattoopro-api/internal/audit"
	domain "github.com/veldroid/tattoopro-api/internal/domain/appointment"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/redislock"
)

// MockRepo
type MockRepo struct {
	GetClientFunc            func(ctx context.Context, id uint) (*models.Client, error)
	GetMasterFunc            func(ctx context.Context, id uint) (*models.Master, error)
	GetServiceFunc           func(ctx context.Context, id uint) (*models.Service, error)
	GetAppointmentFunc       func(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointmentFunc    func(ctx context.Context, ap *models.Appointment) error
	UpdateAppointmentFunc    func(ctx context.Context, ap *models.Appointment) error
	AssertNoTimeConflictFunc func(ctx context.Context, masterID uint, start, end time.Time, excludeID uint) error
}

func (m *MockRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	if m.GetClientFunc != nil {
		return m.GetClientFunc(ctx, id)
	}
	return &models.Client{ID: id}, nil
}

func (m *MockRepo) GetMaster(ctx context.Context, id uint) (*models.Master, error) {
	if m.GetMasterFunc != nil {
		return m.GetMasterFunc(ctx, id)
	}
	return &models.Master{ID: id}, nil
}

func (m *MockRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if m.GetServiceFunc != nil {
		return m.GetServiceFunc(ctx, id)
	}
	return &models.Service{ID: id, Name: "Service"}, nil
}

func (m *MockRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if m.GetAppointmentFunc != nil {
		return m.GetAppointmentFunc(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *MockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.CreateAppointmentFunc != nil {
		return m.CreateAppointmentFunc(ctx, ap)
	}
	return nil
}

func (m *MockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.UpdateAppointmentFunc != nil {
		return m.UpdateAppointmentFunc(ctx, ap)
	}
	return nil
}

func (m *MockRepo) AssertNoTimeConflict(ctx context.Context, masterID uint, start, end time.Time, excludeID uint) error {
	if m.AssertNoTimeConflictFunc != nil {
		return m.AssertNoTimeConflictFunc(ctx, masterID, start, end, excludeID)
	}
	return nil
}

func (m *MockRepo) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func newCreateUC(repo *MockRepo) *CreateAppointment {
	return NewCreateAppointment(repo, redislock.NewNoopLocker(), audit.NewDispatcher(nil))
}

func TestCreateInvalidDate(t *testing.T) {
	uc := newCreateUC(&MockRepo{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    1,
		MasterID:    1,
		ServiceName: "Tattoo",
		StartsAt:    "not-a-date",
		EndsAt:      "2026-06-01T12:00:00Z",
	})
	if !httperr.IsBusiness(err, "INVALID_DATE") {
		t.Fatalf("expected INVALID_DATE, got %v", err)
	}
}

func TestCreateEndsBeforeStart(t *testing.T) {
	uc := newCreateUC(&MockRepo{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    1,
		MasterID:    1,
		ServiceName: "Tattoo",
		StartsAt:    "2026-06-01T12:00:00Z",
		EndsAt:      "2026-06-01T11:00:00Z",
	})
	if !httperr.IsBusiness(err, "ENDS_BEFORE_START") {
		t.Fatalf("expected ENDS_BEFORE_START, got %v", err)
	}
}

func TestCreateInvalidStatus(t *testing.T) {
	uc := newCreateUC(&MockRepo{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    1,
		MasterID:    1,
		ServiceName: "Tattoo",
		StartsAt:    "2026-06-01T12:00:00Z",
		EndsAt:      "2026-06-01T13:00:00Z",
		Status:      "MAYBE",
	})
	if !httperr.IsBusiness(err, "INVALID_STATUS") {
		t.Fatalf("expected INVALID_STATUS, got %v", err)
	}
}

func TestCreateOverlapPropagates(t *testing.T) {
	repo := &MockRepo{
		AssertNoTimeConflictFunc: func(ctx context.Context, masterID uint, start, end time.Time, excludeID uint) error {
			return httperr.ErrBusiness("OVERLAP")
		},
	}
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    1,
		MasterID:    1,
		ServiceName: "Tattoo",
		StartsAt:    "2026-06-01T12:00:00Z",
		EndsAt:      "2026-06-01T13:00:00Z",
	})
	if !httperr.IsBusiness(err, "OVERLAP") {
		t.Fatalf("expected OVERLAP, got %v", err)
	}
}

func TestCreateDefaultsFromService(t *testing.T) {
	price := 120.0
	duration := 90
	serviceID := uint(5)

	repo := &MockRepo{
		GetServiceFunc: func(ctx context.Context, id uint) (*models.Service, error) {
			return &models.Service{
				ID:                     id,
				Name:                   "Small tattoo",
				BasePrice:              &price,
				DefaultDurationMinutes: &duration,
			}, nil
		},
	}
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  1,
		MasterID:  2,
		ServiceID: &serviceID,
		StartsAt:  "2026-06-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.ServiceName != "Small tattoo" {
		t.Fatalf("expected snapshot name from service, got %q", ap.ServiceName)
	}
	if ap.Price != 120 {
		t.Fatalf("expected price from base price, got %v", ap.Price)
	}
	wantEnd := time.Date(2026, time.June, 1, 13, 30, 0, 0, time.UTC)
	if !ap.EndsAt.Equal(wantEnd) {
		t.Fatalf("expected end derived from duration, got %v", ap.EndsAt)
	}
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("expected initial status PENDING, got %s", ap.Status)
	}
}

func TestCreateExplicitPriceWins(t *testing.T) {
	base := 300.0
	explicit := 250.0
	serviceID := uint(7)

	repo := &MockRepo{
		GetServiceFunc: func(ctx context.Context, id uint) (*models.Service, error) {
			return &models.Service{ID: id, Name: "Sleeve", BasePrice: &base}, nil
		},
	}
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:  1,
		MasterID:  2,
		ServiceID: &serviceID,
		Price:     &explicit,
		StartsAt:  "2026-06-01T12:00:00Z",
		EndsAt:    "2026-06-01T16:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Price != 250 {
		t.Fatalf("expected explicit price to win over base price, got %v", ap.Price)
	}
}
