package appointment

import (
	"context"
	"time"

	"github.com/veldroid/tattoopro-api/internal/audit"
	domain "github.com/veldroid/tattoopro-api/internal/domain/appointment"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/models"
	"github.com/veldroid/tattoopro-api/internal/redislock"
)

type CreateAppointmentInput struct {
	ClientID uint
	MasterID uint

	ServiceID   *uint
	ServiceName string
	Price       *float64

	StartsAt string
	EndsAt   string

	Status string
	Notes  *string

	ActorID *uint
}

type CreateAppointment struct {
	repo   domain.Repository
	locker redislock.Locker
	audit  *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	locker redislock.Locker,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := time.Parse(time.RFC3339, in.StartsAt)
	if err != nil {
		return nil, httperr.ErrBusiness("INVALID_DATE")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("CLIENT_NOT_FOUND")
	}
	if _, err := uc.repo.GetMaster(ctx, in.MasterID); err != nil {
		return nil, httperr.ErrBusiness("MASTER_NOT_FOUND")
	}

	serviceName := in.ServiceName
	var price float64
	if in.Price != nil {
		price = *in.Price
	}

	var service *models.Service
	if in.ServiceID != nil {
		service, err = uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("SERVICE_NOT_FOUND")
		}
		if serviceName == "" {
			serviceName = service.Name
		}
		if in.Price == nil && service.BasePrice != nil {
			price = *service.BasePrice
		}
	}
	if serviceName == "" {
		return nil, httperr.ErrBusiness("SERVICE_NAME_REQUIRED")
	}

	end, err := resolveEnd(start, in.EndsAt, service)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, httperr.ErrBusiness("ENDS_BEFORE_START")
	}

	status := in.Status
	if status == "" {
		status = string(domain.InitialStatus())
	}
	if !domain.ValidStatus(status) {
		return nil, httperr.ErrBusiness("INVALID_STATUS")
	}

	ap := &models.Appointment{
		ClientID:    client.ID,
		MasterID:    in.MasterID,
		ServiceID:   in.ServiceID,
		ServiceName: serviceName,
		Price:       price,
		StartsAt:    start,
		EndsAt:      end,
		Status:      status,
		Notes:       in.Notes,
	}

	// The Redis lock keeps two instances off the same master; the
	// transaction's FOR UPDATE check closes the race within one instance.
	err = uc.locker.WithLock(ctx, redislock.MasterKey(in.MasterID), func(ctx context.Context) error {
		return uc.repo.Transact(ctx, func(tx domain.Repository) error {
			if err := tx.AssertNoTimeConflict(ctx, in.MasterID, start, end, 0); err != nil {
				return err
			}
			return tx.CreateAppointment(ctx, ap)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveEnd parses the explicit end or derives it from the service's
// default duration.
func resolveEnd(start time.Time, raw string, service *models.Service) (time.Time, error) {
	if raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, httperr.ErrBusiness("INVALID_DATE")
		}
		return end, nil
	}
	if service != nil && service.DefaultDurationMinutes != nil && *service.DefaultDurationMinutes > 0 {
		return start.Add(time.Duration(*service.DefaultDurationMinutes) * time.Minute), nil
	}
	return time.Time{}, httperr.ErrBusiness("INVALID_DATE")
}
