package durafile

import "io"

// writeBuffer accumulates bytes in process and transfers them to the
// underlying handle only on an explicit Flush or once the threshold is
// exceeded. Unlike bufio.Writer it never latches a write error: bytes the
// OS rejected stay pending, so a later Flush retries the same transfer
// after the caller intervenes.
type writeBuffer struct {
	w         io.Writer
	pending   []byte
	threshold int
}

func newWriteBuffer(w io.Writer, threshold int) *writeBuffer {
	return &writeBuffer{
		w:         w,
		pending:   make([]byte, 0, threshold),
		threshold: threshold,
	}
}

// Write appends p to the buffer. All of p is always retained; a non-nil
// error reports a failed spill of the overflow to the OS, not a loss of p.
func (b *writeBuffer) Write(p []byte) (int, error) {
	b.pending = append(b.pending, p...)
	if len(b.pending) <= b.threshold {
		return len(p), nil
	}
	return len(p), b.Flush()
}

// Buffered returns the number of bytes not yet transferred to the OS.
func (b *writeBuffer) Buffered() int { return len(b.pending) }

// Flush transfers the pending bytes to the OS, dropping only the bytes the
// OS accepted. On failure the remainder stays pending for a retry.
func (b *writeBuffer) Flush() error {
	for len(b.pending) > 0 {
		n, err := b.w.Write(b.pending)
		if n > 0 {
			b.pending = b.pending[:copy(b.pending, b.pending[n:])]
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}
