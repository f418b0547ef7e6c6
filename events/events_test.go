package events

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

type testEvent struct {
	name  string
	attrs map[string]string
}

func (e testEvent) Name() string                  { return e.name }
func (e testEvent) Attributes() map[string]string { return e.attrs }

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	a := testEvent{name: "Submission", attrs: map[string]string{"transaction_id": "0"}}
	b := testEvent{name: "Confirmation", attrs: map[string]string{"transaction_id": "0"}}
	require.NoError(t, r.Publish(ctx, a))
	require.NoError(t, r.Publish(ctx, b))

	assert.Equal(t, []wallet.Event{a, b}, r.Events())
	assert.Equal(t, []string{"Submission", "Confirmation"}, r.Names())

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestBusFiltersByAttributes(t *testing.T) {
	bus, err := NewBus("multisig", log.NewNopLogger())
	require.NoError(t, err)
	defer bus.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	executions := make(chan wallet.Event, 10)
	require.NoError(t, bus.Subscribe(ctx, "multisig.event = 'Execution' AND multisig.transaction_id = '4'", executions))

	all := make(chan wallet.Event, 10)
	require.NoError(t, bus.Subscribe(ctx, "multisig.event EXISTS", all))

	published := []wallet.Event{
		testEvent{name: "Confirmation", attrs: map[string]string{"transaction_id": "4", "sender": "AB"}},
		testEvent{name: "Execution", attrs: map[string]string{"transaction_id": "3"}},
		testEvent{name: "Execution", attrs: map[string]string{"transaction_id": "4"}},
	}
	for _, e := range published {
		require.NoError(t, bus.Publish(ctx, e))
	}

	for _, want := range published {
		select {
		case got := <-all:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("no event delivered, want %s", want.Name())
		}
	}

	select {
	case got := <-executions:
		assert.Equal(t, published[2], got)
	case <-time.After(time.Second):
		t.Fatal("no execution event delivered")
	}
	select {
	case got := <-executions:
		t.Fatalf("unexpected event %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusClosesResultsOnCancel(t *testing.T) {
	bus, err := NewBus("multisig", log.NewNopLogger())
	require.NoError(t, err)
	defer bus.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan wallet.Event)
	require.NoError(t, bus.Subscribe(ctx, "multisig.event = 'Submission'", results))
	cancel()

	select {
	case _, ok := <-results:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("results channel not closed")
	}
}

func TestBusRejectsInvalidQuery(t *testing.T) {
	bus, err := NewBus("multisig", log.NewNopLogger())
	require.NoError(t, err)
	defer bus.Stop()

	err = bus.Subscribe(context.Background(), "multisig.event ===", make(chan wallet.Event))
	assert.True(t, errors.ErrInput.Is(err))
}
