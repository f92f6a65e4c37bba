package durafile

import (
	"log/slog"
	"os"

	"github.com/durafile/durafile/fs"
)

// DefaultBufferSize is the in-process buffer size used when no override is
// configured. Writes spill to the OS only once the buffer exceeds it.
const DefaultBufferSize = 64 * 1024

type options struct {
	fs            fs.FileSystem
	bufferSize    int
	fileMode      os.FileMode
	syncParentDir bool
	logger        *Logger
	metrics       MetricsCollector
}

// Option configures Open/WriteFile behavior.
type Option func(*options)

// WithFileSystem overrides the file system used by the target. Tests use
// this to inject fault-injecting file systems; nil restores the local one.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}

// WithBufferSize configures the in-process buffer threshold in bytes.
// Values < 1 fall back to DefaultBufferSize.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size < 1 {
			size = DefaultBufferSize
		}
		o.bufferSize = size
	}
}

// WithFileMode sets the permission bits used when the destination is created.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithSyncParentDir also syncs the parent directory after a physical commit,
// so the directory entry of a freshly created file survives a crash. Unix
// filesystems do not make the entry durable with the file contents alone.
func WithSyncParentDir() Option {
	return func(o *options) {
		o.syncParentDir = true
	}
}

// WithLogger configures structured logging for target operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for target operations.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		fs:         fs.Default,
		bufferSize: DefaultBufferSize,
		fileMode:   0o644,
		logger:     NoopLogger(),
		metrics:    NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
