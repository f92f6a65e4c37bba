package durafile

import "github.com/durafile/durafile/fs"

// SizeProbe reports the apparent size of a path.
//
// The value comes from cache-level metadata: it reflects
// LevelCacheCommitted state, NOT LevelPhysicallyCommitted state. A correct,
// expected size proves only that the OS accepted the bytes — it can never
// certify that the physical commit has happened. The probe exists to make
// that gap observable and testable.
type SizeProbe struct {
	fsys fs.FileSystem
}

// NewSizeProbe creates a probe over the given file system, or the local one
// if fsys is nil.
func NewSizeProbe(fsys fs.FileSystem) *SizeProbe {
	if fsys == nil {
		fsys = fs.Default
	}
	return &SizeProbe{fsys: fsys}
}

// Size returns the byte length the OS currently reports for path.
func (p *SizeProbe) Size(path string) (int64, error) {
	info, err := p.fsys.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
