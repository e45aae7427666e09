package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shoccho/pnGo/logging"
	"github.com/shoccho/pnGo/oops"
	"github.com/shoccho/pnGo/pngDecoder"
	"github.com/shoccho/pnGo/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type encodeFunc func(w io.Writer, img *pngDecoder.Image) error

var encoders = map[string]encodeFunc{
	".ppm": func(w io.Writer, img *pngDecoder.Image) error {
		return utils.WritePPM(w, int(img.Descriptor.Width), int(img.Descriptor.Height), img.Pix)
	},
	".bmp": func(w io.Writer, img *pngDecoder.Image) error {
		return bmp.Encode(w, img.NRGBA())
	},
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img *pngDecoder.Image) error {
	return tiff.Encode(w, img.NRGBA(), &tiff.Options{Compression: tiff.Deflate})
}

func convert(inPath, outPath string) error {
	ext := strings.ToLower(filepath.Ext(outPath))
	encode, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	img, err := pngDecoder.DecodeFile(inPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return oops.New(err, "creating %s", outPath)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return oops.New(err, "writing %s", outPath)
	}
	if err := f.Close(); err != nil {
		return oops.New(err, "closing %s", outPath)
	}

	logging.Info().
		Str("in", inPath).
		Str("out", outPath).
		Uint32("width", img.Descriptor.Width).
		Uint32("height", img.Descriptor.Height).
		Msg("converted")
	return nil
}
