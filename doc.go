// Package durafile provides a durable-write verification pipeline for local
// and removable block storage.
//
// Written data passes through three durability tiers, and durafile lets a
// caller observe and force progression between them:
//
//	LevelBuffered            data in process memory only
//	LevelCacheCommitted      handed to the OS; visible to any reader;
//	                         survives a process crash, not power loss
//	LevelPhysicallyCommitted flushed to the storage device; survives
//	                         power loss and device removal
//
// # Quick Start
//
//	t, _ := durafile.Open("/mnt/usb/report.csv")
//	t.Write(data)                                      // LevelBuffered
//	t.Flush()                                          // LevelCacheCommitted
//	res, err := t.Commit(ctx, durafile.LevelPhysicallyCommitted)
//	t.Close()
//
// One-shot form:
//
//	res, err := durafile.WriteFile(ctx, dst, src, durafile.LevelPhysicallyCommitted)
//
// # The Gap This Package Exposes
//
// After Flush, every observable signal lies about durability: the file has
// the right size, other processes read the right bytes, and the write call
// reported success. None of that means the data is on the medium. Unplug the
// device before Commit(LevelPhysicallyCommitted) returns and the data is
// gone — silently. Commit is the only operation that can truthfully claim
// "the bytes cannot be lost by removing the device now", and it claims that
// only when the OS genuinely confirmed it.
//
// Close flushes to LevelCacheCommitted on every exit path but never implies
// a physical commit. This asymmetry is deliberate and is the central fact
// the package teaches.
//
// The harness subpackage reproduces the "reported success but data not on
// device" defect class in tests.
//
// # Concurrency
//
// A WriteTarget is single-writer: all operations on one target must be
// serialized by the caller. Commit(LevelPhysicallyCommitted) blocks until
// the device acknowledges; there is no implicit timeout. Callers needing
// bounded latency pass a context with a deadline and receive the expiry as
// ErrMediumFailure.
package durafile
