package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/veldroid/tattoopro-api/internal/domain/appointment"
	"github.com/veldroid/tattoopro-api/internal/httperr"
	"github.com/veldroid/tattoopro-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// WithTx returns a copy bound to a transaction. The usecases run the
// conflict check and the write inside one tx so the FOR UPDATE lock holds
// until commit.
func (r *AppointmentGormRepository) WithTx(tx *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: tx}
}

func (r *AppointmentGormRepository) DB() *gorm.DB {
	return r.db
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetMaster(
	ctx context.Context,
	id uint,
) (*models.Master, error) {

	var master models.Master
	if err := r.db.WithContext(ctx).First(&master, id).Error; err != nil {
		return nil, err
	}
	return &master, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// AssertNoTimeConflict counts every appointment of the master intersecting
// [start, end), whatever its status. Cancelled visits still block the slot,
// freeing it requires deleting or moving them explicitly.
func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	masterID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"master_id = ? AND starts_at < ? AND ends_at > ?",
			masterID,
			end,
			start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("OVERLAP")
	}

	return nil
}

func (r *AppointmentGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
