package alerts

import (
	"time"

	"github.com/google/uuid"

	"sentinel-platform/internal/scoring"
	"sentinel-platform/internal/telemetry"
)

// Factory binds a telemetry event to its score, producing an alert in the
// "new" state. The clock and id generator are injectable for deterministic
// tests; ids default to UUIDs, never wall-clock concatenations.
type Factory struct {
	clock func() time.Time
	idgen func() string
}

func NewFactory() *Factory {
	return &Factory{clock: time.Now, idgen: uuid.NewString}
}

func (f *Factory) WithClock(clock func() time.Time) *Factory {
	f.clock = clock
	return f
}

func (f *Factory) WithIDGenerator(idgen func() string) *Factory {
	f.idgen = idgen
	return f
}

// FromEvent constructs an alert. It does not persist; callers append the
// result to a Repository.
func (f *Factory) FromEvent(e telemetry.Event, score float64, contrib scoring.Contributions) Alert {
	return Alert{
		AlertID:       f.idgen(),
		WorkspaceID:   e.WorkspaceID,
		Event:         e,
		Score:         score,
		Contributions: contrib,
		Severity:      scoring.Severity(score),
		Status:        StatusNew,
		CreatedAt:     f.clock().UTC(),
	}
}
