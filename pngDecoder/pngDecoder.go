package pngDecoder

import (
	"errors"
	"image"
	"io"
	"os"

	"github.com/shoccho/pnGo/compression"
	"github.com/shoccho/pnGo/config"
	"github.com/shoccho/pnGo/logging"
)

// Image is a decoded PNG: its metadata and a row-major RGBA pixel buffer
// holding 4 bytes per pixel with no filter tags.
type Image struct {
	Descriptor ImageDescriptor
	Pix        []byte
	// Filename is set when the image was loaded with DecodeFile.
	Filename string
}

// NRGBA wraps the pixel buffer as an image without copying it.
func (img *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: img.Descriptor.Stride(),
		Rect:   image.Rect(0, 0, int(img.Descriptor.Width), int(img.Descriptor.Height)),
	}
}

type PngDecoder struct {
	data     []uint8
	idx      uint
	finished bool
	chunks   []ChunkType

	// InflateChunkSize is the initial size and growth step of the inflate buffer.
	InflateChunkSize int
	// AllowMissingIEND accepts input that ends on a chunk boundary without IEND.
	AllowMissingIEND bool
}

// NewDecoder checks the signature of data and returns a decoder configured
// from config.Config.
func NewDecoder(data []byte) (*PngDecoder, error) {
	if !isPNG(data) {
		return nil, newError(NotRecognizedFormat, nil, "signature mismatch")
	}
	return &PngDecoder{
		data:             data,
		idx:              uint(len(pngSignature)),
		InflateChunkSize: config.Config.InflateChunkSize,
		AllowMissingIEND: config.Config.AllowMissingIEND,
	}, nil
}

func (pd *PngDecoder) reset() {
	pd.idx = uint(len(pngSignature))
	pd.finished = false
	pd.chunks = nil
}

// Chunks lists the type of every chunk read by the last Decode or DecodeConfig.
func (pd *PngDecoder) Chunks() []ChunkType {
	return pd.chunks
}

// DecodeConfig reads only the header.
func (pd *PngDecoder) DecodeConfig() (ImageDescriptor, error) {
	pd.reset()
	return pd.readHeader()
}

// Decode runs the whole pipeline: chunk walking, inflating and defiltering.
// It either returns a complete image or an error, never both.
func (pd *PngDecoder) Decode() (*Image, error) {
	pd.reset()

	desc, err := pd.readHeader()
	if err != nil {
		return nil, err
	}

	compressedData, err := pd.readImageData()
	if err != nil {
		return nil, err
	}

	inflator := compression.NewInflator()
	inflator.ChunkSize = pd.InflateChunkSize
	inflator.Limit = desc.RawSize()
	decompressed, err := inflator.Inflate(compressedData)
	if errors.Is(err, compression.ErrTooLarge) {
		return nil, newError(CorruptOrTruncated, err, "image data is longer than %d bytes", desc.RawSize())
	}
	if err != nil {
		return nil, newError(DecompressionFailed, err, "inflating image data")
	}

	pix, err := defilter(decompressed, desc)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Uint32("width", desc.Width).
		Uint32("height", desc.Height).
		Int("bytes", len(pix)).
		Msg("decoded png")

	return &Image{
		Descriptor: desc,
		Pix:        pix,
	}, nil
}

func Decode(data []byte) (*Image, error) {
	pd, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}
	return pd.Decode()
}

// DecodeReader reads r to the end and decodes the result.
func DecodeReader(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(FileUnreadable, err, "reading png")
	}
	return Decode(data)
}

func DecodeFile(name string) (*Image, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, newError(FileUnreadable, err, "reading %s", name)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	img.Filename = name
	return img, nil
}

// DecodeConfig returns the header of a PNG held in memory.
func DecodeConfig(data []byte) (ImageDescriptor, error) {
	pd, err := NewDecoder(data)
	if err != nil {
		return ImageDescriptor{}, err
	}
	return pd.DecodeConfig()
}
