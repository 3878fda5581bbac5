package auction

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/ShrijaySharma/Ezauction/models"
)

// eventRecorder captures everything the engine broadcasts.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Emit(event string, payload any) {
	r.events = append(r.events, Event{Type: event, Payload: payload})
}

func (r *eventRecorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *eventRecorder) last(event string) (any, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == event {
			return r.events[i].Payload, true
		}
	}
	return nil, false
}

func (r *eventRecorder) reset() {
	r.events = nil
}

// firstSelector always picks the first candidate, making auto-advance
// deterministic.
func firstSelector(int) int { return 0 }

type fixture struct {
	engine *Engine
	store  *MemStore
	events *eventRecorder
	clock  *clockwork.FakeClock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := NewMemStore()
	events := &eventRecorder{}
	clock := clockwork.NewFakeClock()
	all := append([]Option{WithClock(clock), WithSelector(firstSelector)}, opts...)
	return &fixture{
		engine: New(store, events, nil, all...),
		store:  store,
		events: events,
		clock:  clock,
	}
}

func (f *fixture) addTeam(t *testing.T, name string, budget float64) *models.Team {
	t.Helper()
	team := &models.Team{Name: name, OwnerName: name + " Owner", Budget: budget}
	require.NoError(t, f.store.SaveTeam(context.Background(), team))
	return team
}

func (f *fixture) addPlayer(t *testing.T, name string, basePrice float64) *models.Player {
	t.Helper()
	player := &models.Player{Name: name, Role: "Batsman", BasePrice: basePrice, Status: models.PlayerAvailable}
	require.NoError(t, f.store.SavePlayer(context.Background(), player))
	return player
}

func (f *fixture) addPlayerWithSerial(t *testing.T, name string, serial int) *models.Player {
	t.Helper()
	player := &models.Player{Name: name, Role: "Bowler", BasePrice: 1000, Status: models.PlayerAvailable, SerialNumber: &serial}
	require.NoError(t, f.store.SavePlayer(context.Background(), player))
	return player
}

// goLive loads the player and clears the recorder so tests assert only
// the events they trigger themselves.
func (f *fixture) goLive(t *testing.T, playerID uint) {
	t.Helper()
	_, err := f.engine.LoadPlayer(context.Background(), playerID)
	require.NoError(t, err)
	f.events.reset()
}

func requireReject(t *testing.T, err error, code string) *RejectError {
	t.Helper()
	require.Error(t, err)
	rej, ok := err.(*RejectError)
	require.True(t, ok, "expected RejectError, got %T: %v", err, err)
	require.Equal(t, code, rej.Code)
	return rej
}
