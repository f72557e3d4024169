package notify

import (
	"context"
	"errors"

	"github.com/Tushar07778/expert-session-booking/internal/model"
)

// Publisher accepts slot_booked events. Implementations: Hub, RedisRelay,
// the AMQP audit publisher and Fanout itself.
type Publisher interface {
	Publish(ctx context.Context, ev model.SlotBookedEvent) error
}

// Fanout publishes each event to every sink in order. A failing sink does
// not stop the remaining ones; all errors are joined.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(ctx context.Context, ev model.SlotBookedEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
