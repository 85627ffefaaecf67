package selftest

import (
	"strconv"
	"strings"
)

const crcField = " crc="

// Checksum is the CRC-16 the MCU link framing uses (reflected CCITT
// polynomial, initial value 0xFFFF, no final xor; "123456789" -> 0x6F91).
func Checksum(body string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(body); i++ {
		b := body[i] ^ uint8(crc&0xFF)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}

// Seal appends the checksum field to a report body
func Seal(body string) string {
	const digits = "0123456789abcdef"
	crc := Checksum(body)
	return body + crcField + string([]byte{
		digits[crc>>12&0xF], digits[crc>>8&0xF], digits[crc>>4&0xF], digits[crc&0xF],
	})
}

// Verify strips and checks the checksum field of a sealed line. ok is false
// when the field is missing or does not match the body.
func Verify(line string) (body string, ok bool) {
	i := strings.LastIndex(line, crcField)
	if i < 0 {
		return line, false
	}
	body = line[:i]
	want, err := strconv.ParseUint(line[i+len(crcField):], 16, 16)
	if err != nil {
		return body, false
	}
	return body, uint16(want) == Checksum(body)
}
