package classio

import (
	"encoding/binary"
	"fmt"
)

// cursor is a bounds-checked big-endian reader over a class file's byte
// stream, matching the JVM class-file format's u1/u2/u4 field widths (JVM
// spec §4.1).
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u1() (byte, error) {
	if c.pos+1 > len(c.data) {
		return 0, fmt.Errorf("%w: unexpected end of class data", ErrMalformedInput)
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u2() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, fmt.Errorf("%w: unexpected end of class data", ErrMalformedInput)
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) u4() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, fmt.Errorf("%w: unexpected end of class data", ErrMalformedInput)
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, fmt.Errorf("%w: unexpected end of class data", ErrMalformedInput)
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

func (c *cursor) skip(n int) error {
	_, err := c.bytes(n)
	return err
}
