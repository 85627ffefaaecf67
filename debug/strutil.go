package debug

// Utoa converts an unsigned integer to a string without using fmt
func Utoa(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// Hex formats n as 0x-prefixed lowercase hex
func Hex(n uint64) string {
	const digits = "0123456789abcdef"
	if n == 0 {
		return "0x0"
	}

	var buf [18]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = digits[n&0xf]
		n >>= 4
	}
	pos--
	buf[pos] = 'x'
	pos--
	buf[pos] = '0'
	return string(buf[pos:])
}
