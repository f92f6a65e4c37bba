// Package harness reproduces the "reported success but data not on device"
// defect class for durafile targets.
//
// This package is intended for use in tests and verification tooling.
// A Runner copies a source stream into a destination through a WriteTarget,
// flushes to the cache tier, records everything a caller would observe at
// that point (size, success signal), optionally forces a physical commit,
// and exposes both observations for assertion:
//
//	r := harness.New(
//		harness.WithFileSystem(ffs),         // e.g. a fault-injecting fs
//		harness.WithCommitPhysical(true),
//	)
//	rep, _ := r.RunScenario(ctx, src, dst)
//	rep.Durable()    // physical tier confirmed
//	rep.DataAtRisk() // only the cache tier was reached
//
// The harness never simulates power loss or device removal itself; that is
// an external collaborator's job. It only provides the hook point between
// flush and commit (WithAfterFlushHook) and the recorded states needed to
// verify the contract once such an event is injected, e.g. via
// fs.FaultyFS.RemoveMedium.
package harness
