package pngDecoder

import (
	"io"

	"github.com/shoccho/pnGo/logging"
	"github.com/shoccho/pnGo/utils"
)

// ChunkType is the 4-byte chunk type tag.
type ChunkType [4]byte

var (
	typeIHDR = ChunkType{'I', 'H', 'D', 'R'}
	typeIDAT = ChunkType{'I', 'D', 'A', 'T'}
	typeIEND = ChunkType{'I', 'E', 'N', 'D'}
)

func (t ChunkType) String() string {
	return string(t[:])
}

// Critical reports whether the chunk must be understood to display the image.
func (t ChunkType) Critical() bool {
	return t[0] >= 'A' && t[0] <= 'Z'
}

type chunkKind int

const (
	chunkUnknown chunkKind = iota
	chunkImageData
	chunkEnd
)

func (t ChunkType) kind() chunkKind {
	switch t {
	case typeIDAT:
		return chunkImageData
	case typeIEND:
		return chunkEnd
	}
	return chunkUnknown
}

type Chunk struct {
	Length uint32
	Type   ChunkType
	Data   []byte
	// CRC is carried along but never checked.
	CRC uint32
}

// readChunkHeader reads the length and type of the next chunk. It returns
// io.EOF only when the input ends exactly on a chunk boundary.
func (p *PngDecoder) readChunkHeader() (uint32, ChunkType, error) {
	if p.idx == uint(len(p.data)) {
		return 0, ChunkType{}, io.EOF
	}
	length, err := p.tryAdvance(4)
	if err != nil {
		return 0, ChunkType{}, err
	}
	chunkType, err := p.tryAdvance(4)
	if err != nil {
		return 0, ChunkType{}, err
	}
	return utils.BytesToLength(length), ChunkType(chunkType), nil
}

// readChunkBody reads the payload and trailing CRC of a chunk whose header
// has already been consumed.
func (p *PngDecoder) readChunkBody(length uint32, chunkType ChunkType) (*Chunk, error) {
	chunkData, err := p.tryAdvance(uint(length))
	if err != nil {
		return nil, err
	}
	crc, err := p.tryAdvance(4)
	if err != nil {
		return nil, err
	}
	p.chunks = append(p.chunks, chunkType)

	return &Chunk{
		Length: length,
		Type:   chunkType,
		Data:   chunkData,
		CRC:    utils.BytesToLength(crc),
	}, nil
}

func (p *PngDecoder) nextChunk() (*Chunk, error) {
	length, chunkType, err := p.readChunkHeader()
	if err != nil {
		return nil, err
	}
	return p.readChunkBody(length, chunkType)
}

// tryAdvance returns the next length bytes, or io.ErrUnexpectedEOF if fewer remain.
func (p *PngDecoder) tryAdvance(length uint) ([]uint8, error) {
	if length > uint(len(p.data))-p.idx {
		return nil, io.ErrUnexpectedEOF
	}

	p.idx += length
	return p.data[p.idx-length : p.idx], nil
}

// readHeader reads the IHDR chunk, which must come straight after the signature.
func (p *PngDecoder) readHeader() (ImageDescriptor, error) {
	length, chunkType, err := p.readChunkHeader()
	if err != nil {
		return ImageDescriptor{}, newError(CorruptOrTruncated, err, "reading first chunk")
	}
	if chunkType != typeIHDR {
		return ImageDescriptor{}, newError(UnsupportedFormat, nil, "first chunk is %q, not IHDR", chunkType)
	}
	chunk, err := p.readChunkBody(length, chunkType)
	if err != nil {
		return ImageDescriptor{}, newError(CorruptOrTruncated, err, "reading IHDR")
	}

	ihdr, err := ParseIHDR(chunk.Data)
	if err != nil {
		return ImageDescriptor{}, err
	}
	logging.Debug().
		Uint32("width", ihdr.Width).
		Uint32("height", ihdr.Height).
		Uint8("bitDepth", ihdr.BitDepth).
		Stringer("colorType", ColorType(ihdr.ColorType)).
		Msg("read IHDR")

	return ihdr.Descriptor()
}

// readImageData walks the remaining chunks and concatenates every IDAT
// payload in file order.
func (p *PngDecoder) readImageData() ([]byte, error) {
	var compressedData []byte
	for !p.finished {
		chunk, err := p.nextChunk()
		if err == io.EOF {
			if p.AllowMissingIEND {
				logging.Warn().Msg("png ended without an IEND chunk")
				break
			}
			return nil, newError(CorruptOrTruncated, nil, "input ended before IEND")
		}
		if err != nil {
			return nil, newError(CorruptOrTruncated, err, "reading chunk at offset %d", p.idx)
		}

		switch chunk.Type.kind() {
		case chunkImageData:
			compressedData = append(compressedData, chunk.Data...)
		case chunkEnd:
			p.finished = true
		default:
			logging.Trace().Stringer("type", chunk.Type).Uint32("length", chunk.Length).Msg("skipping chunk")
		}
	}

	logging.Debug().
		Int("chunks", len(p.chunks)).
		Int("compressed", len(compressedData)).
		Msg("collected image data")
	return compressedData, nil
}
