package pngDecoder

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// pngBuilder assembles PNG files chunk by chunk for tests.
type pngBuilder struct {
	buf bytes.Buffer
}

func newPNGBuilder() *pngBuilder {
	b := &pngBuilder{}
	b.buf.Write(pngSignature[:])
	return b
}

func (b *pngBuilder) chunk(typ string, data []byte) *pngBuilder {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	b.buf.Write(length[:])
	b.buf.WriteString(typ)
	b.buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	b.buf.Write(sum[:])
	return b
}

func (b *pngBuilder) ihdr(width, height uint32, bitDepth, colorType byte) *pngBuilder {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = bitDepth
	data[9] = colorType
	return b.chunk("IHDR", data)
}

// idat splits compressed into chunks of the given sizes; the last size is
// repeated until the data runs out.
func (b *pngBuilder) idat(compressed []byte, sizes ...int) *pngBuilder {
	if len(sizes) == 0 {
		return b.chunk("IDAT", compressed)
	}
	for i := 0; len(compressed) > 0; i++ {
		n := sizes[len(sizes)-1]
		if i < len(sizes) {
			n = sizes[i]
		}
		if n > len(compressed) {
			n = len(compressed)
		}
		b.chunk("IDAT", compressed[:n])
		compressed = compressed[n:]
	}
	return b
}

func (b *pngBuilder) iend() *pngBuilder {
	return b.chunk("IEND", nil)
}

func (b *pngBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func deflate(t *testing.T, raw []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// filterImage applies the given filter to each row of pix (tags[row%len(tags)])
// and returns the raw scanline stream an encoder would compress.
func filterImage(pix []byte, width, height int, tags []FilterMethod) []byte {
	const bpp = rgbaBytesPerPixel
	stride := width * bpp
	raw := make([]byte, 0, height*(stride+1))

	for row := 0; row < height; row++ {
		tag := tags[row%len(tags)]
		line := pix[row*stride : (row+1)*stride]
		var prev []byte
		if row > 0 {
			prev = pix[(row-1)*stride : row*stride]
		}

		raw = append(raw, byte(tag))
		for i := range line {
			a := left(line, i, bpp)
			b := above(prev, i)
			c := upperLeft(prev, i, bpp)

			var pred int
			switch tag {
			case SUB:
				pred = a
			case UP:
				pred = b
			case AVG:
				pred = (a + b) / 2
			case PAETH:
				pred = paethPredictor(a, b, c)
			}
			raw = append(raw, byte(int(line[i])-pred))
		}
	}
	return raw
}

func randomPixels(width, height int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	pix := make([]byte, width*height*rgbaBytesPerPixel)
	r.Read(pix)
	return pix
}

func encodeTestPNG(t *testing.T, pix []byte, width, height int, tags []FilterMethod, idatSizes ...int) []byte {
	t.Helper()

	compressed := deflate(t, filterImage(pix, width, height, tags))
	return newPNGBuilder().
		ihdr(uint32(width), uint32(height), 8, byte(TrueColorAlpha)).
		idat(compressed, idatSizes...).
		iend().
		bytes()
}
