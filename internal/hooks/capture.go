package hooks

import "bytes"

// MaxCapture is the most output kept per stream of one entry.
const MaxCapture = 1 << 20

// cappedBuffer keeps the first limit bytes written and drops the rest.
// Writes never fail so a chatty entry is not killed by SIGPIPE.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if room := b.limit - b.buf.Len(); room < len(p) {
		b.truncated = true
		if room <= 0 {
			return n, nil
		}
		p = p[:room]
	}
	b.buf.Write(p)
	return n, nil
}

func (b *cappedBuffer) Bytes() []byte {
	if b.buf.Len() == 0 {
		return nil
	}
	return bytes.Clone(b.buf.Bytes())
}

func (b *cappedBuffer) Truncated() bool {
	return b.truncated
}
