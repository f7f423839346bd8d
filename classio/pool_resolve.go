package classio

import "encoding/binary"

// poolEntryOffsets walks pool (the verbatim constant-pool byte range
// classio otherwise never interprets) just far enough to map each 1-based
// constant index to its tag-byte offset, so the handful of indices the
// driver needs resolved by name (this_class, super_class, exception
// catch types, method name/descriptor) can be read without modeling the
// rest of the pool's semantics.
func poolEntryOffsets(pool []byte) map[int]int {
	offsets := make(map[int]int)
	off := 0
	i := 1
	for off < len(pool) {
		offsets[i] = off
		length, wide, err := skipConstantPoolEntry(pool, off)
		if err != nil {
			break
		}
		off += length
		i++
		if wide {
			i++
		}
	}
	return offsets
}

// resolveUTF8 reads the UTF8 constant at pool index idx, returning "" if
// idx is zero or unresolved.
func resolveUTF8(pool []byte, idx uint16) string {
	if idx == 0 {
		return ""
	}
	offsets := poolEntryOffsets(pool)
	off, ok := offsets[int(idx)]
	if !ok || off >= len(pool) || pool[off] != tagUTF8 {
		return ""
	}
	if off+3 > len(pool) {
		return ""
	}
	n := int(binary.BigEndian.Uint16(pool[off+1:]))
	if off+3+n > len(pool) {
		return ""
	}
	return string(pool[off+3 : off+3+n])
}

// resolveClassName reads the Class constant at pool index idx and follows
// its name_index to the backing UTF8, returning the internal (slash-
// separated) class name.
func resolveClassName(pool []byte, idx uint16) string {
	if idx == 0 {
		return ""
	}
	offsets := poolEntryOffsets(pool)
	off, ok := offsets[int(idx)]
	if !ok || off >= len(pool) || pool[off] != tagClass {
		return ""
	}
	if off+3 > len(pool) {
		return ""
	}
	nameIdx := binary.BigEndian.Uint16(pool[off+1:])
	return resolveUTF8(pool, nameIdx)
}
