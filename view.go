package csvview

import (
	"strings"
	"unsafe"
)

// Text is the set of view types the tokenizer operates on. Named string and byte slice
// types are accepted, so callers can keep their own view type without conversion.
type Text interface {
	~string | ~[]byte
}

// asString reinterprets a view as a string sharing its memory. Both string and slice
// headers start with a data pointer followed by a length, which is all a string needs.
func asString[T Text](s T) string {
	return *(*string)(unsafe.Pointer(&s))
}

func indexByte[T Text](s T, c byte) int {
	return strings.IndexByte(asString(s), c)
}

// chop splits s at the first delim. It reports whether a delimiter was consumed.
func chop[T Text](s T, delim byte) (head, rest T, found bool) {
	i := indexByte(s, delim)
	if i < 0 {
		return s, s[len(s):], false
	}
	return s[:i], s[i+1:], true
}
