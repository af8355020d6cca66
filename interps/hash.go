package interps

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"maps"
	"slices"
)

// Hash returns a digest of the table content. Tables with equal entries hash
// equally whatever their insertion order or identity.
func Hash(table Table) string {
	h := sha256.New()
	var buf []byte
	// length prefixes keep "ab"+"c" apart from "a"+"bc"
	write := func(s string) {
		buf = binary.BigEndian.AppendUint64(buf[:0], uint64(len(s)))
		buf = append(buf, s...)
		h.Write(buf)
	}
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(table)))
	h.Write(buf)
	for _, key := range slices.Sorted(maps.Keys(table)) {
		write(key)
		write(table[key])
	}
	return hex.EncodeToString(h.Sum(nil))
}
