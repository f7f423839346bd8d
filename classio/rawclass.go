package classio

// rawClass holds everything classio decodes but never interprets: the raw
// constant pool bytes, field table, and every method's non-Code
// attributes, all passed through verbatim on re-encode. Only the per-method
// Code attribute is decoded into a bytecode.InstructionList/TryCatchEntry
// set and re-encoded from the (possibly rewritten) form.
type rawClass struct {
	magic              uint32
	minorVersion       uint16
	majorVersion       uint16
	constantPool       []byte // verbatim bytes for pool entries 1..count-1
	constantPoolCount  uint16
	accessFlags        uint16
	thisClass          uint16
	superClass         uint16
	interfaces         []uint16
	fields             []byte // verbatim field_info table bytes
	fieldsCount        uint16
	methodsCount       uint16
	classAttributes    []byte // verbatim ClassFile attribute table bytes
	classAttrCount     uint16
	methodHeaders      []methodHeader
}

// methodHeader is one method_info entry's non-Code portion, kept so Encode
// can reproduce it verbatim: access flags, name/descriptor indices, every
// attribute except Code (kept as raw bytes), and the Code attribute's
// non-bytecode fields (max stack/locals, attribute table after the
// exception table — line numbers, local variable tables — kept verbatim).
type methodHeader struct {
	accessFlags      uint16
	nameIndex        uint16
	descriptorIndex  uint16
	otherAttrs       []byte // verbatim attribute_info entries other than Code
	otherAttrsCount  uint16
	hasCode          bool
	codeNameIndex    uint16
	maxStack         uint16
	maxLocals        uint16
	codeTrailerAttrs []byte // verbatim attribute_info entries inside Code, after the exception table
	codeTrailerCount uint16
}
