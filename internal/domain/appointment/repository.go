package appointment

import (
	"context"
	"time"

	"github.com/veldroid/tattoopro-api/internal/models"
)

type Repository interface {
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetMaster(
		ctx context.Context,
		id uint,
	) (*models.Master, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// AssertNoTimeConflict fails with an overlap business error when the
	// master already has any appointment intersecting [start, end).
	// excludeID skips one appointment, used when rescheduling it.
	AssertNoTimeConflict(
		ctx context.Context,
		masterID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// Transact runs fn against a repository bound to one transaction, so a
	// conflict check keeps its row locks until the write commits.
	Transact(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
