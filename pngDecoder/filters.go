package pngDecoder

import "fmt"

type FilterMethod byte

const (
	NONE FilterMethod = iota
	SUB
	UP
	AVG
	PAETH
)

func (f FilterMethod) String() string {
	switch f {
	case NONE:
		return "None"
	case SUB:
		return "Sub"
	case UP:
		return "Up"
	case AVG:
		return "Average"
	case PAETH:
		return "Paeth"
	}
	return fmt.Sprintf("FilterMethod(%d)", byte(f))
}

func filterMethodFrom(tag byte) (FilterMethod, error) {
	if tag > byte(PAETH) {
		return 0, fmt.Errorf("unknown filter type %d", tag)
	}
	return FilterMethod(tag), nil
}

// defilter reverses the per-row filters of raw and returns the packed pixel
// buffer. raw is not modified.
func defilter(raw []byte, desc ImageDescriptor) ([]byte, error) {
	if len(raw) != desc.RawSize() {
		return nil, newError(CorruptOrTruncated, nil, "decompressed %d bytes, expected %d", len(raw), desc.RawSize())
	}

	bytesPerPixel := desc.BytesPerPixel()
	stride := desc.Stride()
	scanlineSize := desc.ScanlineSize()
	pix := make([]byte, desc.PixSize())

	var previousLine []byte
	for row := 0; row < int(desc.Height); row++ {
		scanline := raw[row*scanlineSize : (row+1)*scanlineSize]
		method, err := filterMethodFrom(scanline[0])
		if err != nil {
			return nil, newError(CorruptOrTruncated, err, "row %d", row)
		}

		line := pix[row*stride : (row+1)*stride]
		filtered := scanline[1:]
		switch method {
		case NONE:
			processNoneFilter(line, filtered)
		case SUB:
			processSubFilter(line, filtered, bytesPerPixel)
		case UP:
			processUpFilter(line, filtered, previousLine)
		case AVG:
			processAvgFilter(line, filtered, previousLine, bytesPerPixel)
		case PAETH:
			processPaethFilter(line, filtered, previousLine, bytesPerPixel)
		}
		previousLine = line
	}
	return pix, nil
}

// left, above and upperLeft fetch already reconstructed neighbors of byte i,
// substituting 0 outside the image. previousLine is nil on the first row.

func left(line []byte, i, bytesPerPixel int) int {
	if i < bytesPerPixel {
		return 0
	}
	return int(line[i-bytesPerPixel])
}

func above(previousLine []byte, i int) int {
	if previousLine == nil {
		return 0
	}
	return int(previousLine[i])
}

func upperLeft(previousLine []byte, i, bytesPerPixel int) int {
	if previousLine == nil || i < bytesPerPixel {
		return 0
	}
	return int(previousLine[i-bytesPerPixel])
}

func processNoneFilter(line, filtered []byte) {
	copy(line, filtered)
}

func processSubFilter(line, filtered []byte, bytesPerPixel int) {
	for i := range filtered {
		line[i] = byte(int(filtered[i]) + left(line, i, bytesPerPixel))
	}
}

func processUpFilter(line, filtered, previousLine []byte) {
	for i := range filtered {
		line[i] = byte(int(filtered[i]) + above(previousLine, i))
	}
}

func processAvgFilter(line, filtered, previousLine []byte, bytesPerPixel int) {
	for i := range filtered {
		a := left(line, i, bytesPerPixel)
		b := above(previousLine, i)
		line[i] = byte(int(filtered[i]) + (a+b)/2)
	}
}

func processPaethFilter(line, filtered, previousLine []byte, bytesPerPixel int) {
	for i := range filtered {
		a := left(line, i, bytesPerPixel)
		b := above(previousLine, i)
		c := upperLeft(previousLine, i, bytesPerPixel)
		line[i] = byte(int(filtered[i]) + paethPredictor(a, b, c))
	}
}
