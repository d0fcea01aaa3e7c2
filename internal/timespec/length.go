package timespec

import "bytes"

// BoundedLength returns the number of bytes before the first NUL in buf,
// capped at maxLength and at len(buf). A nil buffer has length 0.
func BoundedLength(buf []byte, maxLength int) int {
	if buf == nil || maxLength <= 0 {
		return 0
	}
	limit := min(maxLength, len(buf))
	if i := bytes.IndexByte(buf[:limit], 0); i >= 0 {
		return i
	}
	return limit
}
