package core

// Decimal formatting without fmt. The event ring prints from the fault
// path, where pulling in fmt costs flash the small targets do not have.

// utoa formats an unsigned integer in decimal
func utoa(n uint32) string {
	var buf [10]byte // fits MaxUint32
	pos := len(buf)
	for {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			return string(buf[pos:])
		}
	}
}

// itoa formats a signed integer in decimal
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}
