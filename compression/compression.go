package compression

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/shoccho/pnGo/config"
	"github.com/shoccho/pnGo/logging"
	"github.com/shoccho/pnGo/oops"
)

var (
	ErrNoData    = errors.New("compression: no compressed data")
	ErrTruncated = errors.New("compression: stream ended before its end marker")
	ErrCorrupt   = errors.New("compression: malformed stream")
	ErrTooLarge  = errors.New("compression: output exceeds limit")
)

// Status is the outcome of a single decompression step.
type Status int

const (
	NeedMoreOutput Status = iota
	StreamComplete
	NoOp
	FatalError
)

func (s Status) String() string {
	switch s {
	case NeedMoreOutput:
		return "need-more-output"
	case StreamComplete:
		return "stream-complete"
	case NoOp:
		return "no-op"
	case FatalError:
		return "fatal-error"
	}
	return "unknown"
}

// maxNoProgress bounds how many consecutive empty reads are tolerated before
// the stream is considered stuck.
const maxNoProgress = 100

type Inflator struct {
	// ChunkSize is the initial output capacity and the growth increment.
	ChunkSize int

	// Limit caps the number of bytes the stream may produce. Zero means no cap.
	Limit int

	// NewReader opens the decompression primitive over the compressed bytes.
	NewReader func(r io.Reader) (io.ReadCloser, error)
}

func NewInflator() *Inflator {
	return &Inflator{
		ChunkSize: config.Config.InflateChunkSize,
		NewReader: zlib.NewReader,
	}
}

// InflateData decompresses a complete zlib stream with the default settings.
func InflateData(compressedData []byte) ([]byte, error) {
	return NewInflator().Inflate(compressedData)
}

// Inflate decompresses compressedData and returns exactly the bytes produced.
// On any failure the partial output is discarded.
func (inf *Inflator) Inflate(compressedData []byte) ([]byte, error) {
	if len(compressedData) == 0 {
		return nil, oops.New(ErrNoData, "nothing to inflate")
	}

	chunkSize := inf.ChunkSize
	if chunkSize <= 0 {
		chunkSize = config.DefaultInflateChunkSize
	}
	newReader := inf.NewReader
	if newReader == nil {
		newReader = zlib.NewReader
	}

	zr, err := newReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, classify(err, "opening stream")
	}
	defer zr.Close()

	out := newOutputBuffer(chunkSize)
	noProgress := 0
	for {
		status, n, err := step(zr, out)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			noProgress = 0
		}
		if inf.Limit > 0 && out.Len() > inf.Limit {
			return nil, oops.New(ErrTooLarge, "produced more than %d bytes", inf.Limit)
		}

		switch status {
		case StreamComplete:
			logging.Trace().
				Int("compressed", len(compressedData)).
				Int("inflated", out.Len()).
				Int("capacity", out.Cap()).
				Msg("inflated stream")
			return out.Bytes(), nil
		case NeedMoreOutput:
			out.Grow()
		case NoOp:
			if n > 0 {
				continue
			}
			noProgress++
			if noProgress > maxNoProgress {
				return nil, oops.New(ErrTruncated, "no progress after %d reads", noProgress)
			}
		}
	}
}

// step feeds the primitive once, writing into the free region of out.
func step(zr io.Reader, out *outputBuffer) (Status, int, error) {
	n, err := zr.Read(out.Free())
	out.Advance(n)

	switch {
	case err == io.EOF:
		return StreamComplete, n, nil
	case err != nil:
		return FatalError, n, classify(err, "inflating")
	case out.Available() == 0:
		return NeedMoreOutput, n, nil
	}
	return NoOp, n, nil
}

func classify(err error, during string) error {
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return oops.New(ErrTruncated, "%s: %v", during, err)
	default:
		return oops.New(ErrCorrupt, "%s: %v", during, err)
	}
}
