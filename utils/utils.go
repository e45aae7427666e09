package utils

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

func BytesToLength(data []byte) uint32 {
	return binary.BigEndian.Uint32(data)
}

// WritePPM writes a binary PPM (P6). PPM has no alpha channel, so the fourth
// byte of every RGBA pixel is dropped.
func WritePPM(w io.Writer, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return fmt.Errorf("ppm: have %d pixel bytes for a %dx%d image", len(rgba), width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	for i := 0; i < len(rgba); i += 4 {
		if _, err := bw.Write(rgba[i : i+3]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
