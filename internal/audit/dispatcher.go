package audit

import "github.com/rs/zerolog/log"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit entries off the request path. Events that cannot
// be queued are dropped, auditing must never fail an API call.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

// NewDispatcher starts the background writer. A nil logger disables
// auditing, every event is silently dropped.
func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	if logger != nil {
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Error().Err(err).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d.logger == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Warn().Msg("audit queue full, dropping event")
	}
}
