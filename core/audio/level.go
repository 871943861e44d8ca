package audio

import (
	"encoding/binary"
	"math"
)

// Level returns the RMS loudness of a linear16 little-endian frame,
// normalized to [0, 1]. Other formats report 0.
func Level(frame []byte, format Format) float64 {
	if format != EncodingLinear16 || len(frame) < 2 {
		return 0
	}

	samples := len(frame) / 2
	var sum float64
	for i := range samples {
		sample := float64(int16(binary.LittleEndian.Uint16(frame[2*i:])))
		sum += sample * sample
	}

	rms := math.Sqrt(sum/float64(samples)) / math.MaxInt16
	return min(rms, 1)
}
