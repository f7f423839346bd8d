package classio

import (
	"encoding/binary"
	"fmt"
)

// Constant pool tags, JVM spec §4.4. Only what's needed to skip over each
// entry's variable-length payload is modeled — classio passes the raw pool
// bytes through untouched and reads only the UTF8 and Class entries behind
// the few names it resolves (pool_resolve.go).
const (
	tagUTF8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// skipConstantPoolEntry returns the byte length of one constant-pool entry
// starting at data[off] (the tag byte), or an error if the tag is
// unrecognized. Long/Double entries occupy two pool slots, signaled via
// wide.
func skipConstantPoolEntry(data []byte, off int) (length int, wide bool, err error) {
	if off >= len(data) {
		return 0, false, fmt.Errorf("%w: constant pool entry out of range", ErrMalformedInput)
	}
	tag := data[off]
	switch tag {
	case tagUTF8:
		if off+3 > len(data) {
			return 0, false, fmt.Errorf("%w: truncated UTF8 constant", ErrMalformedInput)
		}
		n := int(binary.BigEndian.Uint16(data[off+1:]))
		return 3 + n, false, nil
	case tagInteger, tagFloat, tagFieldref, tagMethodref, tagInterfaceMethodref,
		tagNameAndType, tagDynamic, tagInvokeDynamic:
		return 5, false, nil
	case tagLong, tagDouble:
		return 9, true, nil
	case tagClass, tagString, tagMethodType, tagModule, tagPackage:
		return 3, false, nil
	case tagMethodHandle:
		return 4, false, nil
	default:
		return 0, false, fmt.Errorf("%w: unrecognized constant pool tag %d", ErrMalformedInput, tag)
	}
}

// skipConstantPool walks constantPoolCount-1 entries starting at off,
// returning the offset immediately past the pool.
func skipConstantPool(data []byte, off int, count int) (int, error) {
	// Pool indices run 1..count-1; a Long/Double entry consumes the next
	// index too without a real entry there (JVM spec §4.4.5).
	i := 1
	for i < count {
		length, wide, err := skipConstantPoolEntry(data, off)
		if err != nil {
			return 0, err
		}
		off += length
		i++
		if wide {
			i++
		}
	}
	return off, nil
}
