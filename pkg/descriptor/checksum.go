package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

const (
	inputCharset = "0123456789()[],'/*abcdefgh@:$%{}" +
		"IJKLMNOPQRSTUVWXYZ&+-.;<=>?!^_|~" +
		"ijklmnopqrstuvwxyzABCDEFGH`#\"\\ "
	checksumCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	checksumLength  = 8
)

var (
	// ErrInvalidChecksum is returned when the checksum appended to a
	// descriptor does not match its body.
	ErrInvalidChecksum = errors.New("invalid descriptor checksum")
)

func polymod(c uint64, val uint64) uint64 {
	c0 := c >> 35
	c = ((c & 0x7ffffffff) << 5) ^ val
	if c0&1 != 0 {
		c ^= 0xf5dee51989
	}
	if c0&2 != 0 {
		c ^= 0xa9fdca3312
	}
	if c0&4 != 0 {
		c ^= 0x1bab10e32d
	}
	if c0&8 != 0 {
		c ^= 0x3706b1677a
	}
	if c0&16 != 0 {
		c ^= 0x644d626ffd
	}
	return c
}

// Checksum computes the 8 characters checksum of a descriptor body, ie.
// without the trailing #checksum.
func Checksum(desc string) (string, error) {
	c := uint64(1)
	cls, clsCount := uint64(0), 0
	for i := 0; i < len(desc); i++ {
		pos := strings.IndexByte(inputCharset, desc[i])
		if pos < 0 {
			return "", fmt.Errorf("invalid character %q at position %d", desc[i], i)
		}
		c = polymod(c, uint64(pos&31))
		cls = cls*3 + uint64(pos>>5)
		clsCount++
		if clsCount == 3 {
			c = polymod(c, cls)
			cls, clsCount = 0, 0
		}
	}
	if clsCount > 0 {
		c = polymod(c, cls)
	}
	for i := 0; i < checksumLength; i++ {
		c = polymod(c, 0)
	}
	c ^= 1

	checksum := make([]byte, checksumLength)
	for i := 0; i < checksumLength; i++ {
		checksum[i] = checksumCharset[(c>>(5*(7-i)))&31]
	}
	return string(checksum), nil
}

// SplitChecksum returns the body of the descriptor and verifies the
// appended checksum, if any.
func SplitChecksum(desc string) (string, error) {
	idx := strings.IndexByte(desc, '#')
	if idx < 0 {
		if _, err := Checksum(desc); err != nil {
			return "", err
		}
		return desc, nil
	}

	body, expected := desc[:idx], desc[idx+1:]
	checksum, err := Checksum(body)
	if err != nil {
		return "", err
	}
	if checksum != expected {
		return "", ErrInvalidChecksum
	}
	return body, nil
}
