package harness

import (
	"github.com/google/uuid"

	"github.com/durafile/durafile"
)

// Observation captures what a caller could see about the destination at one
// point in a scenario. ReportedSuccess models the caller-visible illusion of
// completion: it is the *observed* success signal, not a durability claim.
type Observation struct {
	Level           durafile.DurabilityLevel
	Size            int64
	ReportedSuccess bool
}

// Report is the outcome of one copy-then-verify scenario. PreCommit is
// always recorded after the flush to the cache tier; PostCommit is recorded
// only when a physical commit was attempted.
type Report struct {
	ID          uuid.UUID
	Destination string
	BytesCopied int64

	PreCommit  Observation
	PostCommit *Observation

	// CommitErr holds the physical-commit failure, if any. It is recorded
	// rather than swallowed so tests can assert on the exact error class.
	CommitErr error
}

// Durable reports whether the physical tier was genuinely confirmed.
func (r *Report) Durable() bool {
	return r.PostCommit != nil && r.PostCommit.Level == durafile.LevelPhysicallyCommitted
}

// DataAtRisk reports whether the data would be lost by a power-loss or
// medium-removal event right now: the copy looked successful but never
// reached the physical tier.
func (r *Report) DataAtRisk() bool {
	return r.PreCommit.ReportedSuccess && !r.Durable()
}
