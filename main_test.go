package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// writeTestPNG writes a 2x1 PNG whose only row uses the None filter.
func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	_, err := zw.Write([]byte{0, 255, 0, 0, 255, 0, 0, 255, 128})
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var png bytes.Buffer
	png.Write([]byte{137, 80, 78, 71, 13, 10, 26, 10})
	writeChunk := func(typ string, data []byte) {
		n := len(data)
		png.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
		png.WriteString(typ)
		png.Write(data)
		png.Write([]byte{0, 0, 0, 0})
	}
	writeChunk("IHDR", []byte{0, 0, 0, 2, 0, 0, 0, 1, 8, 6, 0, 0, 0})
	writeChunk("IDAT", idat.Bytes())
	writeChunk("IEND", nil)

	path := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(path, png.Bytes(), 0o644))
	return path
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)

	t.Run("ppm", func(t *testing.T) {
		out := filepath.Join(dir, "out.ppm")
		require.NoError(t, convert(in, out))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, append([]byte("P6\n2 1\n255\n"), 255, 0, 0, 0, 0, 255), data)
	})
	t.Run("bmp", func(t *testing.T) {
		out := filepath.Join(dir, "out.bmp")
		require.NoError(t, convert(in, out))
		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		cfg, err := bmp.DecodeConfig(f)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Width)
		assert.Equal(t, 1, cfg.Height)
	})
	t.Run("tiff", func(t *testing.T) {
		out := filepath.Join(dir, "out.TIFF")
		require.NoError(t, convert(in, out))
		f, err := os.Open(out)
		require.NoError(t, err)
		defer f.Close()
		img, err := tiff.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 255, A: 128}, color.NRGBAModel.Convert(img.At(1, 0)))
	})
	t.Run("unknown extension", func(t *testing.T) {
		assert.Error(t, convert(in, filepath.Join(dir, "out.jpg")))
	})
	t.Run("missing input", func(t *testing.T) {
		assert.Error(t, convert(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.ppm")))
	})
}

func TestInfoCommand(t *testing.T) {
	in := writeTestPNG(t, t.TempDir())

	var out bytes.Buffer
	rootCommand.SetOut(&out)
	rootCommand.SetArgs([]string{"info", in})
	require.NoError(t, rootCommand.Execute())

	assert.Contains(t, out.String(), "width:      2\n")
	assert.Contains(t, out.String(), "height:     1\n")
	assert.Contains(t, out.String(), "color type: TrueColorAlpha\n")
	assert.Contains(t, out.String(), "pixels:     8 bytes\n")
}
