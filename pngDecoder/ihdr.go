package pngDecoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

type ColorType byte

const (
	Grayscale      ColorType = 0
	TrueColor      ColorType = 2
	Paletted       ColorType = 3
	GrayscaleAlpha ColorType = 4
	TrueColorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Grayscale"
	case TrueColor:
		return "TrueColor"
	case Paletted:
		return "Paletted"
	case GrayscaleAlpha:
		return "GrayscaleAlpha"
	case TrueColorAlpha:
		return "TrueColorAlpha"
	}
	return fmt.Sprintf("ColorType(%d)", byte(c))
}

const (
	ihdrLength        = 13
	supportedBitDepth = 8
	rgbaBytesPerPixel = 4
)

// IHDR mirrors the header chunk payload byte for byte.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          byte
	ColorType         byte
	CompressionMethod byte
	FilterMethod      byte
	InterlaceMethod   byte
}

// ImageDescriptor is the validated image metadata. It only ever describes
// 8-bit truecolor-with-alpha images.
type ImageDescriptor struct {
	Width     uint32
	Height    uint32
	BitDepth  uint8
	ColorType ColorType
}

func (d ImageDescriptor) BytesPerPixel() int {
	return rgbaBytesPerPixel
}

// Stride is the number of pixel bytes in one row.
func (d ImageDescriptor) Stride() int {
	return int(d.Width) * d.BytesPerPixel()
}

// ScanlineSize is the size of one filtered row, including its filter tag.
func (d ImageDescriptor) ScanlineSize() int {
	return 1 + d.Stride()
}

// RawSize is the exact length of the decompressed scanline stream.
func (d ImageDescriptor) RawSize() int {
	return int(d.Height) * d.ScanlineSize()
}

// PixSize is the length of the final pixel buffer.
func (d ImageDescriptor) PixSize() int {
	return int(d.Height) * d.Stride()
}

// ParseIHDR reads the header fields in file order. Compression, filter and
// interlace methods are read but not validated.
func ParseIHDR(data []byte) (*IHDR, error) {
	if len(data) < ihdrLength {
		return nil, newError(CorruptOrTruncated, nil, "IHDR is %d bytes, need %d", len(data), ihdrLength)
	}

	var ihdr IHDR
	err := binary.Read(bytes.NewReader(data[:ihdrLength]), binary.BigEndian, &ihdr)
	if err != nil {
		return nil, newError(CorruptOrTruncated, err, "reading IHDR")
	}
	return &ihdr, nil
}

// Descriptor validates the header against the supported subset.
func (ihdr *IHDR) Descriptor() (ImageDescriptor, error) {
	if ihdr.Width == 0 {
		return ImageDescriptor{}, newError(UnsupportedFormat, nil, "width is zero")
	}
	if ihdr.Height == 0 {
		return ImageDescriptor{}, newError(UnsupportedFormat, nil, "height is zero")
	}
	if ihdr.BitDepth != supportedBitDepth {
		return ImageDescriptor{}, newError(UnsupportedFormat, nil, "bit depth %d", ihdr.BitDepth)
	}
	if ColorType(ihdr.ColorType) != TrueColorAlpha {
		return ImageDescriptor{}, newError(UnsupportedFormat, nil, "color type %v", ColorType(ihdr.ColorType))
	}

	scanlineSize := 1 + uint64(ihdr.Width)*rgbaBytesPerPixel
	if uint64(ihdr.Height) > uint64(math.MaxInt)/scanlineSize {
		return ImageDescriptor{}, newError(UnsupportedFormat, nil, "image of %dx%d is too large", ihdr.Width, ihdr.Height)
	}

	return ImageDescriptor{
		Width:     ihdr.Width,
		Height:    ihdr.Height,
		BitDepth:  ihdr.BitDepth,
		ColorType: TrueColorAlpha,
	}, nil
}
