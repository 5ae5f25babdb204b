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

// UpdateAppointmentInput carries only the fields the caller sent; nil means
// leave unchanged.
type UpdateAppointmentInput struct {
	ID uint

	ClientID *uint
	MasterID *uint

	ServiceID   *uint
	ServiceName *string
	Price       *float64

	StartsAt *string
	EndsAt   *string

	Status *string
	Notes  *string

	ActorID *uint
}

type UpdateAppointment struct {
	repo   domain.Repository
	locker redislock.Locker
	audit  *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker redislock.Locker,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.ClientID != nil {
		if _, err := uc.repo.GetClient(ctx, *in.ClientID); err != nil {
			return nil, httperr.ErrBusiness("CLIENT_NOT_FOUND")
		}
		ap.ClientID = *in.ClientID
	}
	if in.MasterID != nil {
		if _, err := uc.repo.GetMaster(ctx, *in.MasterID); err != nil {
			return nil, httperr.ErrBusiness("MASTER_NOT_FOUND")
		}
		ap.MasterID = *in.MasterID
	}

	if in.ServiceID != nil {
		service, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("SERVICE_NOT_FOUND")
		}
		ap.ServiceID = in.ServiceID
		if in.ServiceName == nil {
			ap.ServiceName = service.Name
		}
	}
	if in.ServiceName != nil {
		if *in.ServiceName == "" {
			return nil, httperr.ErrBusiness("SERVICE_NAME_REQUIRED")
		}
		ap.ServiceName = *in.ServiceName
	}
	if in.Price != nil {
		ap.Price = *in.Price
	}

	if in.StartsAt != nil {
		start, err := time.Parse(time.RFC3339, *in.StartsAt)
		if err != nil {
			return nil, httperr.ErrBusiness("INVALID_DATE")
		}
		ap.StartsAt = start
	}
	if in.EndsAt != nil {
		end, err := time.Parse(time.RFC3339, *in.EndsAt)
		if err != nil {
			return nil, httperr.ErrBusiness("INVALID_DATE")
		}
		ap.EndsAt = end
	}
	if !ap.EndsAt.After(ap.StartsAt) {
		return nil, httperr.ErrBusiness("ENDS_BEFORE_START")
	}

	if in.Status != nil {
		if !domain.ValidStatus(*in.Status) {
			return nil, httperr.ErrBusiness("INVALID_STATUS")
		}
		ap.Status = *in.Status
	}
	if in.Notes != nil {
		ap.Notes = in.Notes
	}

	// Reschedules re-run the conflict check against everyone but this
	// appointment itself.
	err = uc.locker.WithLock(ctx, redislock.MasterKey(ap.MasterID), func(ctx context.Context) error {
		return uc.repo.Transact(ctx, func(tx domain.Repository) error {
			if err := tx.AssertNoTimeConflict(ctx, ap.MasterID, ap.StartsAt, ap.EndsAt, ap.ID); err != nil {
				return err
			}
			return tx.UpdateAppointment(ctx, ap)
		})
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
