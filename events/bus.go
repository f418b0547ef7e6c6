package events

import (
	"context"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/libs/pubsub"
	tmquery "github.com/tendermint/tendermint/libs/pubsub/query"
	tmrand "github.com/tendermint/tendermint/libs/rand"
)

// DefaultCapacity is the number of events buffered for a subscriber that
// does not consume them. A subscriber that falls further behind is
// cancelled.
const DefaultCapacity = 100

// Bus is an EventSink that republishes events on a pubsub server.
type Bus struct {
	server    *pubsub.Server
	namespace string
}

var _ wallet.EventSink = (*Bus)(nil)

// NewBus starts a pubsub server. Event tags are prefixed with given
// namespace, for example "multisig".
func NewBus(namespace string, logger log.Logger) (*Bus, error) {
	server := pubsub.NewServer()
	server.SetLogger(logger.With("module", "events"))
	if err := server.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "start pubsub server: %s", err)
	}
	return &Bus{server: server, namespace: namespace}, nil
}

// Stop shuts down the pubsub server. All subscriptions are cancelled.
func (b *Bus) Stop() error {
	return b.server.Stop()
}

// Tag returns the full name of an event attribute, as used in queries.
func (b *Bus) Tag(attribute string) string {
	return b.namespace + "." + attribute
}

// Publish blocks until the event is accepted by the server or the context
// is cancelled.
func (b *Bus) Publish(ctx wallet.Context, e wallet.Event) error {
	tags := map[string][]string{
		b.Tag("event"): {e.Name()},
	}
	for k, v := range e.Attributes() {
		tags[b.Tag(k)] = []string{v}
	}
	if err := b.server.PublishWithEvents(ctx, e, tags); err != nil {
		return errors.Wrapf(errors.ErrState, "publish %s: %s", e.Name(), err)
	}
	return nil
}

// Subscribe feeds all events matching the query to the results channel.
// The subscription ends when the context is cancelled or the bus is
// stopped. The results channel is closed at the end of the subscription.
func (b *Bus) Subscribe(ctx context.Context, query string, results chan<- wallet.Event) error {
	q, err := tmquery.New(query)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "query %q: %s", query, err)
	}
	subscriber := tmrand.Str(16)
	sub, err := b.server.Subscribe(ctx, subscriber, q, DefaultCapacity)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "subscribe to %q: %s", query, err)
	}

	go func() {
		defer close(results)
	EventLoop:
		for {
			select {
			case <-ctx.Done():
				_ = b.server.Unsubscribe(context.Background(), subscriber, q)
				break EventLoop
			case <-sub.Cancelled():
				// Messages accepted before the cancellation are
				// still delivered.
				for {
					select {
					case msg := <-sub.Out():
						forward(ctx, msg, results)
					default:
						break EventLoop
					}
				}
			case msg := <-sub.Out():
				forward(ctx, msg, results)
			}
		}
	}()
	return nil
}

func forward(ctx context.Context, msg pubsub.Message, results chan<- wallet.Event) {
	e, ok := msg.Data().(wallet.Event)
	if !ok {
		return
	}
	select {
	case results <- e:
	case <-ctx.Done():
	}
}
