package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func frame(samples ...int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

func TestLevelSilence(t *testing.T) {
	if got := Level(frame(0, 0, 0, 0), EncodingLinear16); got != 0 {
		t.Fatalf("expected silence to be 0, got %v", got)
	}
}

func TestLevelFullScale(t *testing.T) {
	got := Level(frame(math.MaxInt16, math.MinInt16+1, math.MaxInt16, math.MinInt16+1), EncodingLinear16)
	if math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected full scale level 1, got %v", got)
	}
}

func TestLevelUnsupportedFormat(t *testing.T) {
	if got := Level([]byte{0x10, 0x20}, EncodingMulaw); got != 0 {
		t.Fatalf("expected 0 for mulaw, got %v", got)
	}
}

func TestBytesFor(t *testing.T) {
	info := GetDefaultEncodingInfo()
	if got := info.BytesFor(50 * time.Millisecond); got != 1600 {
		t.Fatalf("expected 1600 bytes for 50ms, got %d", got)
	}
}
