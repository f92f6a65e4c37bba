package durafile

// DurabilityLevel identifies how far written bytes have progressed toward
// physical storage. Levels are ordered weakest to strongest and the recorded
// level of a target only increases until the next Write.
type DurabilityLevel int

const (
	// LevelBuffered means data sits in process memory only. A crash of the
	// writing process loses it.
	LevelBuffered DurabilityLevel = iota

	// LevelCacheCommitted means data was accepted by the operating system.
	// It is visible to any reader of the path and survives a process crash,
	// but not power loss or device removal.
	LevelCacheCommitted

	// LevelPhysicallyCommitted means the storage device confirmed the write.
	// The data survives power loss and device removal.
	LevelPhysicallyCommitted
)

func (l DurabilityLevel) String() string {
	switch l {
	case LevelBuffered:
		return "buffered"
	case LevelCacheCommitted:
		return "cache-committed"
	case LevelPhysicallyCommitted:
		return "physically-committed"
	default:
		return "unknown"
	}
}

// ParseLevel parses the string form produced by DurabilityLevel.String.
// It accepts the short aliases "cache" and "physical".
func ParseLevel(s string) (DurabilityLevel, error) {
	switch s {
	case "buffered":
		return LevelBuffered, nil
	case "cache-committed", "cache":
		return LevelCacheCommitted, nil
	case "physically-committed", "physical":
		return LevelPhysicallyCommitted, nil
	}
	return LevelBuffered, &ErrUnknownLevel{Name: s}
}

// CommitResult is the outcome of a commit attempt. Level is never higher
// than requested unless a stronger commit was already satisfied before the
// call.
type CommitResult struct {
	// Level is the durability level the target had reached when the commit
	// attempt finished.
	Level DurabilityLevel

	// DeviceSynced reports whether this call performed device I/O. An
	// already-satisfied commit returns immediately with DeviceSynced false.
	DeviceSynced bool
}
