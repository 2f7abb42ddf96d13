package logic

import "strconv"

// AppendTimeOfDay appends t as H:M:S in unsigned decimal without leading zeros.
func AppendTimeOfDay(dst []byte, t TimeOfDay) []byte {
	dst = strconv.AppendUint(dst, uint64(t.Hour), 10)
	dst = append(dst, ':')
	dst = strconv.AppendUint(dst, uint64(t.Minute), 10)
	dst = append(dst, ':')
	dst = strconv.AppendUint(dst, uint64(t.Second), 10)
	return dst
}

// String returns the H:M:S form of t.
func (t TimeOfDay) String() string {
	var buf [12]byte
	return string(AppendTimeOfDay(buf[:0], t))
}
