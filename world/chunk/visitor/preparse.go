// Package visitor implements the per-format-generation chunk decoders:
// Alpha, Anvil V3/V13/V16/V18, and the Bedrock LevelDB sub-chunk format.
package visitor

import (
	"github.com/df-mc/pixelmap/format/nbt"
)

// PreParseDataVersion reads a chunk blob's top-level "DataVersion" tag in a
// single cheap pass: it walks the stream via the streaming, skip-subtree
// Walk API and drains everything else unread. DecodeAnvil does not call
// it; it takes DataVersion from the fully decoded tree.
func PreParseDataVersion(data []byte) (int32, error) {
	var dv int32
	_, err := nbt.Walk(data, nbt.BigEndian, nbt.Visitor{
		OnTag: func(name string, tag nbt.Tag, scalar any) bool {
			if name == "DataVersion" {
				if v, ok := scalar.(int32); ok {
					dv = v
				}
				return false
			}
			return true
		},
	})
	return dv, err
}
