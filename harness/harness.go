package harness

import (
	"context"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/durafile/durafile"
	"github.com/durafile/durafile/fs"
)

// Scenario pairs a source stream with a destination path for batch runs.
type Scenario struct {
	Source      io.Reader
	Destination string
}

// Runner orchestrates copy-then-verify scenarios.
type Runner struct {
	fsys           fs.FileSystem
	probe          *durafile.SizeProbe
	logger         *durafile.Logger
	metrics        durafile.MetricsCollector
	chunkSize      int
	limiter        *rate.Limiter
	parallelism    int
	commitPhysical bool
	afterFlush     func(ctx context.Context, rep *Report) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithFileSystem overrides the file system scenarios run against. Tests
// inject fs.FaultyFS here; nil restores the local one.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(r *Runner) {
		if fsys == nil {
			fsys = fs.Default
		}
		r.fsys = fsys
	}
}

// WithChunkSize sets the copy chunk size in bytes. Values < 1 keep the
// default of 32 KiB.
func WithChunkSize(size int) Option {
	return func(r *Runner) {
		if size >= 1 {
			r.chunkSize = size
		}
	}
}

// WithIOLimit throttles the copy to bytesPerSec. Zero means unlimited.
func WithIOLimit(bytesPerSec int) Option {
	return func(r *Runner) {
		if bytesPerSec > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
		}
	}
}

// WithParallelism bounds RunAll concurrency. Values < 1 keep the default
// of 1 (fully serialized).
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.parallelism = n
		}
	}
}

// WithCommitPhysical controls whether scenarios attempt the physical commit
// after recording the pre-commit observation.
func WithCommitPhysical(commit bool) Option {
	return func(r *Runner) {
		r.commitPhysical = commit
	}
}

// WithAfterFlushHook installs the injection point between flush and commit.
// External collaborators simulate medium removal or power loss here; a
// non-nil error aborts the scenario before any commit attempt.
func WithAfterFlushHook(hook func(ctx context.Context, rep *Report) error) Option {
	return func(r *Runner) {
		r.afterFlush = hook
	}
}

// WithLogger configures structured logging for scenario runs.
func WithLogger(logger *durafile.Logger) Option {
	return func(r *Runner) {
		if logger == nil {
			logger = durafile.NoopLogger()
		}
		r.logger = logger
	}
}

// WithMetricsCollector configures metrics for the targets the runner opens.
func WithMetricsCollector(mc durafile.MetricsCollector) Option {
	return func(r *Runner) {
		if mc == nil {
			mc = durafile.NoopMetricsCollector{}
		}
		r.metrics = mc
	}
}

// New creates a Runner.
func New(optFns ...Option) *Runner {
	r := &Runner{
		fsys:        fs.Default,
		logger:      durafile.NoopLogger(),
		metrics:     durafile.NoopMetricsCollector{},
		chunkSize:   32 * 1024,
		parallelism: 1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(r)
		}
	}
	r.probe = durafile.NewSizeProbe(r.fsys)
	return r
}

// RunScenario copies src into dst, flushes to the cache tier, records the
// caller-visible pre-commit state, runs the after-flush hook and then, if
// configured, attempts the physical commit.
//
// A returned error means the scenario itself could not be carried out (copy
// or flush failure, hook abort). A physical-commit failure is NOT a scenario
// error: it is the very outcome the harness exists to observe, so it is
// recorded in Report.CommitErr and the report is returned with a nil error.
func (r *Runner) RunScenario(ctx context.Context, src io.Reader, dst string) (*Report, error) {
	rep := &Report{
		ID:          uuid.New(),
		Destination: dst,
	}
	log := r.logger.WithScenario(rep.ID.String()).WithPath(dst)

	t, err := durafile.Open(dst,
		durafile.WithFileSystem(r.fsys),
		durafile.WithLogger(r.logger),
		durafile.WithMetricsCollector(r.metrics),
	)
	if err != nil {
		return rep, err
	}
	defer t.Close()

	if rep.BytesCopied, err = r.copy(ctx, t, src); err != nil {
		return rep, err
	}
	if err := t.Flush(); err != nil {
		return rep, err
	}

	size, err := r.probe.Size(dst)
	if err != nil {
		return rep, err
	}

	// The illusion of completion: every signal a caller checks looks right,
	// yet only the cache tier is guaranteed.
	rep.PreCommit = Observation{
		Level:           t.Level(),
		Size:            size,
		ReportedSuccess: true,
	}
	log.Info("pre-commit state recorded",
		"level", rep.PreCommit.Level.String(),
		"size", rep.PreCommit.Size,
	)

	if r.afterFlush != nil {
		if err := r.afterFlush(ctx, rep); err != nil {
			return rep, err
		}
	}

	if r.commitPhysical {
		res, commitErr := t.Commit(ctx, durafile.LevelPhysicallyCommitted)
		post := Observation{
			Level:           t.Level(),
			ReportedSuccess: commitErr == nil,
		}
		if size, serr := r.probe.Size(dst); serr == nil {
			post.Size = size
		}
		rep.PostCommit = &post
		rep.CommitErr = commitErr
		if commitErr != nil {
			log.Warn("physical commit failed, data at risk",
				"level", t.Level().String(),
				"error", commitErr,
			)
		} else {
			log.Info("physical commit confirmed",
				"level", res.Level.String(),
			)
		}
	}

	return rep, nil
}

// RunAll runs scenarios with bounded parallelism. Destinations must be
// distinct: each target is still owned by exactly one writer.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) ([]*Report, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	reports := make([]*Report, len(scenarios))
	for i, sc := range scenarios {
		g.Go(func() error {
			rep, err := r.RunScenario(ctx, sc.Source, sc.Destination)
			reports[i] = rep
			return err
		})
	}
	return reports, g.Wait()
}

func (r *Runner) copy(ctx context.Context, t *durafile.WriteTarget, src io.Reader) (int64, error) {
	chunk := make([]byte, r.chunkSize)
	var total int64
	for {
		n, rerr := src.Read(chunk)
		if n > 0 {
			if r.limiter != nil {
				if err := r.limiter.WaitN(ctx, n); err != nil {
					return total, err
				}
			}
			wn, werr := t.Write(chunk[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}
