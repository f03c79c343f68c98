package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFixture hand-encodes a minimal big-endian compound:
//
//	Compound "" {
//	  Int "a" = 7
//	  Compound "skipme" { Byte "x" = 1 }
//	  Int "b" = 9
//	}
func buildFixture() []byte {
	var b []byte
	putU8 := func(v byte) { b = append(b, v) }
	putU16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	putStr := func(s string) { putU16(uint16(len(s))); b = append(b, s...) }
	putI32 := func(v int32) {
		u := uint32(v)
		b = append(b, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	}

	putU8(byte(TagCompound))
	putStr("")

	putU8(byte(TagInt))
	putStr("a")
	putI32(7)

	putU8(byte(TagCompound))
	putStr("skipme")
	putU8(byte(TagByte))
	putStr("x")
	putU8(1)
	putU8(byte(TagEnd))

	putU8(byte(TagInt))
	putStr("b")
	putI32(9)

	putU8(byte(TagEnd))
	return b
}

func TestWalkBasic(t *testing.T) {
	data := buildFixture()
	var seen []string
	n, err := Walk(data, BigEndian, Visitor{
		OnTag: func(name string, tag Tag, scalar any) bool {
			seen = append(seen, name)
			return false
		},
	})
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, []string{"a", "skipme", "x", "b"}, seen)
}

func TestWalkSkipSubtree(t *testing.T) {
	data := buildFixture()
	var seen []string
	n, err := Walk(data, BigEndian, Visitor{
		OnTag: func(name string, tag Tag, scalar any) bool {
			seen = append(seen, name)
			return name == "skipme"
		},
	})
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, []string{"a", "skipme", "b"}, seen)
}

func TestWalkTruncated(t *testing.T) {
	data := buildFixture()
	_, err := Walk(data[:len(data)-3], BigEndian, Visitor{
		OnTag: func(string, Tag, any) bool { return false },
	})
	require.Error(t, err)
}
