package pngDecoder

// pngSignature is the fixed 8-byte magic at the start of every PNG file.
var pngSignature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

func isPNG(data []byte) bool {
	if len(data) < len(pngSignature) {
		return false
	}
	return [8]byte(data[:8]) == pngSignature
}

// paethPredictor picks whichever of a (left), b (above) and c (upper left)
// is closest to a+b-c. Ties go to a, then b.
func paethPredictor(a, b, c int) int {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
