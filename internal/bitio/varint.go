package bitio

import "errors"

// ErrVarintTruncated is returned when a varint's continuation bit is set on
// the last byte available in the buffer.
var ErrVarintTruncated = errors.New("bitio: varint truncated")

// ErrVarintOverflow is returned when a varint would need more than
// ceil(bits/7) groups for the requested width.
var ErrVarintOverflow = errors.New("bitio: varint overflow")

// ReadVarUint32 reads a LEB128-style varint (continuation-bit groups of 7
// bits, LSB first) into a uint32, consuming at most 5 bytes.
func ReadVarUint32(b []byte) (v uint32, n int, err error) {
	v64, n, err := readVarUint(b, 32)
	return uint32(v64), n, err
}

// ReadVarUint64 reads a LEB128-style varint into a uint64, consuming at most
// 10 bytes.
func ReadVarUint64(b []byte) (v uint64, n int, err error) {
	v32, n, err := readVarUint(b, 64)
	return v32, n, err
}

// readVarUint implements the shared decode loop; bits bounds the number of
// groups consumed (ceil(bits/7)).
func readVarUint(b []byte, bits int) (uint64, int, error) {
	maxGroups := (bits + 6) / 7
	var v uint64
	for i := 0; i < maxGroups; i++ {
		if i >= len(b) {
			return 0, i, ErrVarintTruncated
		}
		byt := b[i]
		v |= uint64(byt&0x7f) << (7 * i)
		if byt&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, maxGroups, ErrVarintOverflow
}

// SkipVarUint advances past a varint without materializing its value,
// returning the number of bytes consumed.
func SkipVarUint(b []byte, bits int) (int, error) {
	maxGroups := (bits + 6) / 7
	for i := 0; i < maxGroups; i++ {
		if i >= len(b) {
			return i, ErrVarintTruncated
		}
		if b[i]&0x80 == 0 {
			return i + 1, nil
		}
	}
	return maxGroups, ErrVarintOverflow
}

// WriteVarUint64 appends v to dst as a LEB128-style varint and returns the
// extended slice. Used by tests exercising the round-trip property.
func WriteVarUint64(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// ZigZagEncode32 maps a signed int32 onto an unsigned range suitable for
// varint encoding (as Bedrock's sequence/key varints do).
func ZigZagEncode32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }

// ZigZagDecode32 reverses ZigZagEncode32.
func ZigZagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }
