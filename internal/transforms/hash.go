package transforms

import "unicode/utf16"

// StringHash is the djb2 xor variant walking UTF-16 code units from the end,
// producing the same unsigned 32-bit values as the npm string-hash package.
func StringHash(s string) uint32 {
	units := utf16.Encode([]rune(s))
	h := uint32(5381)
	for i := len(units) - 1; i >= 0; i-- {
		h = h*33 ^ uint32(units[i])
	}
	return h
}
