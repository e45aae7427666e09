package compression

// outputBuffer is a growable byte container that tracks the number of bytes
// written separately from its allocated capacity.
type outputBuffer struct {
	buf       []byte
	n         int
	increment int
}

func newOutputBuffer(increment int) *outputBuffer {
	return &outputBuffer{
		buf:       make([]byte, increment),
		increment: increment,
	}
}

// Grow extends the capacity by one increment, keeping every written byte.
func (b *outputBuffer) Grow() {
	grown := make([]byte, len(b.buf)+b.increment)
	copy(grown, b.buf[:b.n])
	b.buf = grown
}

// Free is the unwritten region at the end of the buffer.
func (b *outputBuffer) Free() []byte {
	return b.buf[b.n:]
}

func (b *outputBuffer) Advance(n int) {
	if n < 0 || b.n+n > len(b.buf) {
		panic("compression: advance past end of output buffer")
	}
	b.n += n
}

func (b *outputBuffer) Available() int {
	return len(b.buf) - b.n
}

func (b *outputBuffer) Len() int {
	return b.n
}

func (b *outputBuffer) Cap() int {
	return len(b.buf)
}

// Bytes returns the written bytes, trimmed to their exact length.
func (b *outputBuffer) Bytes() []byte {
	return b.buf[:b.n:b.n]
}
