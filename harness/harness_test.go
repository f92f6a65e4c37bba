package harness

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durafile/durafile"
	"github.com/durafile/durafile/fs"
)

const payloadSize = 1 << 20 // 1 MiB, per the reference scenario

func payload() []byte {
	return bytes.Repeat([]byte{0xAB}, payloadSize)
}

func TestScenarioWithoutCommitReportsDataAtRisk(t *testing.T) {
	tmp := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	dst := filepath.Join(tmp, "copy.bin")

	r := New(
		WithFileSystem(ffs),
		WithCommitPhysical(false),
	)

	rep, err := r.RunScenario(context.Background(), bytes.NewReader(payload()), dst)
	require.NoError(t, err)

	// Every caller-visible signal looks like success...
	assert.Equal(t, int64(payloadSize), rep.BytesCopied)
	assert.True(t, rep.PreCommit.ReportedSuccess)
	assert.Equal(t, int64(payloadSize), rep.PreCommit.Size)
	assert.Equal(t, durafile.LevelCacheCommitted, rep.PreCommit.Level)

	// ...yet a medium removal right now would lose the data.
	assert.True(t, rep.DataAtRisk())
	assert.False(t, rep.Durable())
	assert.Nil(t, rep.PostCommit)
	assert.Equal(t, int64(0), ffs.DeviceSyncs())
}

func TestScenarioMediumRemovedBeforeCommit(t *testing.T) {
	tmp := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	dst := filepath.Join(tmp, "lost.bin")

	r := New(
		WithFileSystem(ffs),
		WithCommitPhysical(true),
		// The external event: unplug between flush and commit.
		WithAfterFlushHook(func(ctx context.Context, rep *Report) error {
			ffs.RemoveMedium()
			return nil
		}),
	)

	rep, err := r.RunScenario(context.Background(), bytes.NewReader(payload()), dst)
	require.NoError(t, err)

	assert.True(t, rep.DataAtRisk())
	assert.False(t, rep.Durable())
	require.Error(t, rep.CommitErr)
	assert.ErrorIs(t, rep.CommitErr, durafile.ErrMediumFailure)
	require.NotNil(t, rep.PostCommit)
	assert.Equal(t, durafile.LevelCacheCommitted, rep.PostCommit.Level)
	assert.False(t, rep.PostCommit.ReportedSuccess)
}

func TestScenarioCommittedBeforeRemovalIsDurable(t *testing.T) {
	tmp := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	dst := filepath.Join(tmp, "safe.bin")

	r := New(
		WithFileSystem(ffs),
		WithCommitPhysical(true),
	)

	rep, err := r.RunScenario(context.Background(), bytes.NewReader(payload()), dst)
	require.NoError(t, err)

	// Removal after the commit cannot take the data back.
	ffs.RemoveMedium()

	assert.True(t, rep.Durable())
	assert.False(t, rep.DataAtRisk())
	assert.NoError(t, rep.CommitErr)
	require.NotNil(t, rep.PostCommit)
	assert.Equal(t, durafile.LevelPhysicallyCommitted, rep.PostCommit.Level)
	assert.Equal(t, int64(payloadSize), rep.PostCommit.Size)
	assert.Equal(t, int64(1), ffs.DeviceSyncs())
}

func TestScenarioHookAbortsBeforeCommit(t *testing.T) {
	tmp := t.TempDir()
	dst := filepath.Join(tmp, "aborted.bin")
	boom := fmt.Errorf("environment injection failed")

	r := New(
		WithCommitPhysical(true),
		WithAfterFlushHook(func(ctx context.Context, rep *Report) error {
			return boom
		}),
	)

	rep, err := r.RunScenario(context.Background(), bytes.NewReader([]byte("x")), dst)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rep.PostCommit)
}

func TestRunAllBoundedParallelism(t *testing.T) {
	tmp := t.TempDir()

	scenarios := make([]Scenario, 4)
	for i := range scenarios {
		scenarios[i] = Scenario{
			Source:      bytes.NewReader(bytes.Repeat([]byte{byte(i)}, 4096)),
			Destination: filepath.Join(tmp, fmt.Sprintf("dst-%d.bin", i)),
		}
	}

	r := New(
		WithCommitPhysical(true),
		WithParallelism(2),
	)

	reports, err := r.RunAll(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, reports, 4)
	for i, rep := range reports {
		assert.True(t, rep.Durable(), "scenario %d", i)
		assert.Equal(t, int64(4096), rep.BytesCopied)
		assert.NotEqual(t, rep.ID.String(), "")
	}
}

func TestRunnerIOLimitStillCompletes(t *testing.T) {
	tmp := t.TempDir()
	dst := filepath.Join(tmp, "throttled.bin")

	r := New(
		WithChunkSize(8*1024),
		WithIOLimit(64*1024*1024), // generous: exercise the limiter path, not the wait
		WithCommitPhysical(true),
	)

	rep, err := r.RunScenario(context.Background(), bytes.NewReader(bytes.Repeat([]byte{1}, 64*1024)), dst)
	require.NoError(t, err)
	assert.True(t, rep.Durable())
	assert.Equal(t, int64(64*1024), rep.BytesCopied)
}
