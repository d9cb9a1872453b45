// Package clock renders elapsed time on the panel at a fixed cadence.
package clock

// Len is the length of a formatted time.
const Len = len("MM:SS.cc")

// Format returns ms as "MM:SS.cc": minutes modulo 100, seconds, and
// hundredths of a second, each zero padded to two digits.
func Format(ms uint64) string {
	var b [Len]byte
	return string(Append(b[:0], ms))
}

// Append appends the Format of ms to dst and returns the extended buffer.
// It does not allocate when dst has room for Len more bytes.
func Append(dst []byte, ms uint64) []byte {
	centis := ms / 10
	cc := centis % 100
	secs := centis / 100
	ss := secs % 60
	mm := (secs / 60) % 100
	dst = append2(dst, mm)
	dst = append(dst, ':')
	dst = append2(dst, ss)
	dst = append(dst, '.')
	return append2(dst, cc)
}

func append2(dst []byte, v uint64) []byte {
	return append(dst, byte('0'+v/10), byte('0'+v%10))
}
