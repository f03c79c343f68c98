package bitio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndianRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	PutBigU64(buf, math.MaxUint64)
	require.Equal(t, uint64(math.MaxUint64), BigU64(buf))
	PutLittleU64(buf, math.MaxUint64)
	require.Equal(t, uint64(math.MaxUint64), LittleU64(buf))

	for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 300} {
		PutBigU32(buf[:4], uint32(v))
		require.Equal(t, v, BigI32(buf[:4]))
		PutLittleU32(buf[:4], uint32(v))
		require.Equal(t, v, LittleI32(buf[:4]))
	}

	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		PutBigU64(buf, uint64(v))
		require.Equal(t, v, BigI64(buf))
		PutLittleU64(buf, uint64(v))
		require.Equal(t, v, LittleI64(buf))
	}

	f32 := float32(3.1415927)
	PutBigU32(buf[:4], math.Float32bits(f32))
	require.Equal(t, f32, BigF32(buf[:4]))

	f64 := 2.718281828459045
	PutBigU64(buf, math.Float64bits(f64))
	require.Equal(t, f64, BigF64(buf))
}

func TestVarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, math.MaxInt64, 300} {
		enc := WriteVarUint64(nil, v)
		got, n, err := ReadVarUint64(enc)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(enc), n)

		skipped, err := SkipVarUint(enc, 64)
		require.NoError(t, err)
		require.Equal(t, n, skipped)
	}
}

func TestNibbleWordCounts(t *testing.T) {
	const count = 4096
	for _, bits := range []int{1, 2, 3, 4, 5, 6, 8, 10, 14, 16, 32} {
		wordBits := 64
		gotNonSpanning := NonSpanningWordCount(count, bits, wordBits)
		wantNonSpanning := int(math.Ceil(float64(count) / math.Floor(float64(wordBits)/float64(bits))))
		require.Equalf(t, wantNonSpanning, gotNonSpanning, "bits=%d", bits)

		gotSpanning := SpanningWordCount(count, bits, wordBits)
		wantSpanning := int(math.Ceil(float64(count*bits) / float64(wordBits)))
		require.Equalf(t, wantSpanning, gotSpanning, "bits=%d", bits)
	}
}

func TestNibbleSpanningCombinesAcrossWords(t *testing.T) {
	// bits=5 over 64-bit words: field index 12 starts at bit 60 and spans
	// into the next word (60+5 > 64).
	data := []uint64{0xFFFFFFFFFFFFFFFF, 0x000000000000001F}
	v := NibbleSpanning64(data, 12, 5)
	require.Equal(t, uint64(0x1F), v)
}

func TestNibbleNonSpanningLeavesPadding(t *testing.T) {
	// bits=5, wordBits=64: parts=12, leftover 4 bits per word are padding
	// and never read.
	data := []uint64{0b10101 << 55}
	v := NibbleNonSpanning64(data, 11, 5)
	require.Equal(t, uint64(0b10101), v)
}

func TestNibble4(t *testing.T) {
	data := make([]byte, 8)
	SetNibble4(data, 0, 0xA)
	SetNibble4(data, 1, 0xB)
	require.Equal(t, byte(0xA), Nibble4(data, 0))
	require.Equal(t, byte(0xB), Nibble4(data, 1))
}
