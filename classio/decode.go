package classio

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/jreduce/jreduce/bytecode"
)

// classFileMagic is the mandatory 0xCAFEBABE class-file header (JVM spec
// §4.1).
const classFileMagic = 0xCAFEBABE

// Parse decodes data into a ClassUnit: the constant pool, field table, and
// every method's non-Code structure are kept as opaque bytes; each
// method's Code attribute is decoded into a bytecode.InstructionList and
// try-catch table.
func Parse(data []byte) (*ClassUnit, error) {
	c := &cursor{data: data}

	magic, err := c.u4()
	if err != nil {
		return nil, err
	}
	if magic != classFileMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrMalformedInput, magic)
	}

	minor, err := c.u2()
	if err != nil {
		return nil, err
	}
	major, err := c.u2()
	if err != nil {
		return nil, err
	}
	poolCount, err := c.u2()
	if err != nil {
		return nil, err
	}

	poolStart := c.pos
	poolEnd, err := skipConstantPool(data, poolStart, int(poolCount))
	if err != nil {
		return nil, err
	}
	pool := data[poolStart:poolEnd]
	c.pos = poolEnd

	accessFlags, err := c.u2()
	if err != nil {
		return nil, err
	}
	thisClass, err := c.u2()
	if err != nil {
		return nil, err
	}
	superClass, err := c.u2()
	if err != nil {
		return nil, err
	}
	interfaceCount, err := c.u2()
	if err != nil {
		return nil, err
	}
	interfaces := make([]uint16, interfaceCount)
	for i := range interfaces {
		v, err := c.u2()
		if err != nil {
			return nil, err
		}
		interfaces[i] = v
	}

	fieldsCount, err := c.u2()
	if err != nil {
		return nil, err
	}
	fieldsStart := c.pos
	for i := uint16(0); i < fieldsCount; i++ {
		if err := skipFieldOrMethodShell(c); err != nil {
			return nil, err
		}
	}
	fields := data[fieldsStart:c.pos]

	methodsCount, err := c.u2()
	if err != nil {
		return nil, err
	}

	headers := make([]methodHeader, methodsCount)
	units := make([]MethodUnit, 0, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		h, unit, err := decodeMethod(c, pool)
		if err != nil {
			return nil, err
		}
		headers[i] = h
		if unit != nil {
			units = append(units, *unit)
		}
	}

	classAttrCount, err := c.u2()
	if err != nil {
		return nil, err
	}
	classAttrsStart := c.pos
	for i := uint16(0); i < classAttrCount; i++ {
		if err := skipAttribute(c); err != nil {
			return nil, err
		}
	}
	classAttrs := data[classAttrsStart:c.pos]

	raw := rawClass{
		magic:             magic,
		minorVersion:      minor,
		majorVersion:      major,
		constantPool:      pool,
		constantPoolCount: poolCount,
		accessFlags:       accessFlags,
		thisClass:         thisClass,
		superClass:        superClass,
		interfaces:        interfaces,
		fields:            fields,
		fieldsCount:       fieldsCount,
		methodsCount:      methodsCount,
		classAttributes:   classAttrs,
		classAttrCount:    classAttrCount,
		methodHeaders:     headers,
	}

	internalName := resolveClassName(pool, thisClass)
	ifaceNames := make([]string, len(interfaces))
	for i, idx := range interfaces {
		ifaceNames[i] = resolveClassName(pool, idx)
	}
	for i := range units {
		units[i].ClassRef = internalName
	}

	return &ClassUnit{
		InternalName: internalName,
		SuperName:    resolveClassName(pool, superClass),
		Interfaces:   ifaceNames,
		Methods:      units,
		raw:          raw,
	}, nil
}

// skipFieldOrMethodShell advances past one field_info (or the non-Code
// portion of a method_info) entry: access_flags, name_index,
// descriptor_index, then its attribute table.
func skipFieldOrMethodShell(c *cursor) error {
	if err := c.skip(6); err != nil {
		return err
	}
	return skipAttributeTable(c)
}

func skipAttributeTable(c *cursor) error {
	count, err := c.u2()
	if err != nil {
		return err
	}
	for i := uint16(0); i < count; i++ {
		if err := skipAttribute(c); err != nil {
			return err
		}
	}
	return nil
}

func skipAttribute(c *cursor) error {
	if _, err := c.u2(); err != nil { // name_index
		return err
	}
	length, err := c.u4()
	if err != nil {
		return err
	}
	return c.skip(int(length))
}

func decodeMethod(c *cursor, pool []byte) (methodHeader, *MethodUnit, error) {
	accessFlags, err := c.u2()
	if err != nil {
		return methodHeader{}, nil, err
	}
	nameIdx, err := c.u2()
	if err != nil {
		return methodHeader{}, nil, err
	}
	descIdx, err := c.u2()
	if err != nil {
		return methodHeader{}, nil, err
	}
	attrCount, err := c.u2()
	if err != nil {
		return methodHeader{}, nil, err
	}

	h := methodHeader{accessFlags: accessFlags, nameIndex: nameIdx, descriptorIndex: descIdx}
	var unit *MethodUnit
	var otherAttrs []byte

	for i := uint16(0); i < attrCount; i++ {
		attrStart := c.pos
		nameAttrIdx, err := c.u2()
		if err != nil {
			return h, nil, err
		}
		length, err := c.u4()
		if err != nil {
			return h, nil, err
		}
		attrName := resolveUTF8(pool, nameAttrIdx)

		if attrName == "Code" {
			bodyStart := c.pos
			codeUnit, trailer, trailerCount, err := decodeCode(c, pool)
			if err != nil {
				return h, nil, err
			}
			if c.pos != bodyStart+int(length) {
				// Tolerate minor miscounts from the deliberately partial
				// opcode table by resyncing to the attribute's declared end
				// rather than failing the whole file.
				c.pos = bodyStart + int(length)
			}
			h.hasCode = true
			h.codeNameIndex = nameAttrIdx
			h.codeTrailerAttrs = trailer
			h.codeTrailerCount = trailerCount
			h.maxStack = codeUnit.maxStack
			h.maxLocals = codeUnit.maxLocals
			unit = &MethodUnit{
				Name:       resolveUTF8(pool, nameIdx),
				Descriptor: resolveUTF8(pool, descIdx),
				List:       codeUnit.list,
				Tries:      codeUnit.tries,
			}
			continue
		}

		if err := c.skip(int(length)); err != nil {
			return h, nil, err
		}
		otherAttrs = append(otherAttrs, c.data[attrStart:c.pos]...)
	}
	h.otherAttrs = otherAttrs
	h.otherAttrsCount = attrCount
	if h.hasCode {
		h.otherAttrsCount--
	}

	return h, unit, nil
}

type decodedCode struct {
	maxStack  uint16
	maxLocals uint16
	list      *bytecode.InstructionList
	tries     []bytecode.TryCatchEntry
}

// excRecord is one raw exception_table entry (JVM spec §4.7.3), byte
// offsets not yet resolved to InstructionList positions.
type excRecord struct{ start, end, handler, catchType uint16 }

func decodeCode(c *cursor, pool []byte) (decodedCode, []byte, uint16, error) {
	maxStack, err := c.u2()
	if err != nil {
		return decodedCode{}, nil, 0, err
	}
	maxLocals, err := c.u2()
	if err != nil {
		return decodedCode{}, nil, 0, err
	}
	codeLength, err := c.u4()
	if err != nil {
		return decodedCode{}, nil, 0, err
	}
	code, err := c.bytes(int(codeLength))
	if err != nil {
		return decodedCode{}, nil, 0, err
	}

	excCount, err := c.u2()
	if err != nil {
		return decodedCode{}, nil, 0, err
	}
	excs := make([]excRecord, excCount)
	for i := range excs {
		start, err := c.u2()
		if err != nil {
			return decodedCode{}, nil, 0, err
		}
		end, err := c.u2()
		if err != nil {
			return decodedCode{}, nil, 0, err
		}
		handler, err := c.u2()
		if err != nil {
			return decodedCode{}, nil, 0, err
		}
		catchType, err := c.u2()
		if err != nil {
			return decodedCode{}, nil, 0, err
		}
		excs[i] = excRecord{start, end, handler, catchType}
	}

	trailerStart := c.pos
	trailerCount, err := c.u2()
	if err != nil {
		return decodedCode{}, nil, 0, err
	}
	for i := uint16(0); i < trailerCount; i++ {
		if err := skipAttribute(c); err != nil {
			return decodedCode{}, nil, 0, err
		}
	}
	trailer := append([]byte(nil), c.data[trailerStart:c.pos]...)

	list, offsetToIndex, err := decodeInstructions(code, excs)
	if err != nil {
		return decodedCode{}, nil, 0, err
	}

	tries := make([]bytecode.TryCatchEntry, len(excs))
	for i, e := range excs {
		startIdx, ok := offsetToIndex[int(e.start)]
		if !ok {
			return decodedCode{}, nil, 0, fmt.Errorf("%w: try-catch start offset unresolved", ErrMalformedInput)
		}
		endIdx, ok := offsetToIndex[int(e.end)]
		if !ok {
			endIdx = list.Len()
		}
		handlerIdx, ok := offsetToIndex[int(e.handler)]
		if !ok {
			return decodedCode{}, nil, 0, fmt.Errorf("%w: try-catch handler offset unresolved", ErrMalformedInput)
		}
		typeName := ""
		if e.catchType != 0 {
			typeName = resolveClassName(pool, e.catchType)
		}
		tries[i] = bytecode.TryCatchEntry{Start: startIdx, End: endIdx, Handler: handlerIdx, Type: typeName}
	}

	return decodedCode{maxStack: maxStack, maxLocals: maxLocals, list: list, tries: tries}, trailer, trailerCount, nil
}

// decodeInstructions turns a raw bytecode array into an InstructionList,
// synthesizing a KindLabel at every byte offset referenced by a branch,
// switch target, or try-catch boundary (including a try-catch End that
// falls exactly at the end of the method's bytecode).
func decodeInstructions(code []byte, excs []excRecord) (*bytecode.InstructionList, map[int]int, error) {
	targets, err := collectBranchTargets(code)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range excs {
		targets[int(e.start)] = struct{}{}
		targets[int(e.end)] = struct{}{}
		targets[int(e.handler)] = struct{}{}
	}

	offsets := make([]int, 0, len(targets))
	for o := range targets {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)

	labelAt := make(map[int]string, len(offsets))
	for _, o := range offsets {
		labelAt[o] = fmt.Sprintf("L%d", o)
	}

	var instrs []bytecode.Instruction
	offsetToIndex := make(map[int]int)

	pos := 0
	for pos < len(code) {
		if _, isTarget := targets[pos]; isTarget {
			instrs = append(instrs, bytecode.Instruction{Kind: bytecode.KindLabel, Label: labelAt[pos]})
		}
		offsetToIndex[pos] = len(instrs)

		ins, width, err := decodeOneInstruction(code, pos, labelAt)
		if err != nil {
			return nil, nil, err
		}
		instrs = append(instrs, ins)
		pos += width
	}
	if _, isTarget := targets[len(code)]; isTarget {
		offsetToIndex[len(code)] = len(instrs)
		instrs = append(instrs, bytecode.Instruction{Kind: bytecode.KindLabel, Label: labelAt[len(code)]})
	}

	return bytecode.NewInstructionList(instrs), offsetToIndex, nil
}

func decodeOneInstruction(code []byte, pos int, labelAt map[int]string) (bytecode.Instruction, int, error) {
	opcode := int(code[pos])

	if isSwitch(opcode) {
		return decodeSwitch(code, pos, func(off int) string { return labelAt[off] })
	}

	if shape, ok := opcodeShapes[opcode]; ok {
		width := 1 + shape.operandBytes
		ins := bytecode.Instruction{Kind: shape.kind, Opcode: opcode}
		if shape.kind == bytecode.KindJump || shape.kind == bytecode.KindBranch {
			off := readBranchOffset(code, pos, shape.operandBytes)
			target := pos + off
			ins.Targets = []string{labelAt[target]}
		}
		return ins, width, nil
	}

	operandBytes := fixedOperandBytes[opcode]
	ins := bytecode.Instruction{Kind: bytecode.KindPlain, Opcode: opcode}
	if operandBytes > 0 && pos+1+operandBytes <= len(code) {
		ins.Operand = int(readBigEndian(code[pos+1 : pos+1+operandBytes]))
	}
	return ins, 1 + operandBytes, nil
}

func readBranchOffset(code []byte, pos, operandBytes int) int {
	raw := code[pos+1 : pos+1+operandBytes]
	v := readBigEndian(raw)
	// Branch offsets are signed.
	bits := uint(operandBytes * 8)
	signBit := int64(1) << (bits - 1)
	if v >= uint64(signBit) {
		return int(int64(v) - (signBit << 1))
	}
	return int(v)
}

func readBigEndian(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

func decodeSwitch(code []byte, pos int, labelAt func(int) string) (bytecode.Instruction, int, error) {
	cur := pos + 1
	for cur%4 != 0 {
		cur++
	}
	if cur+4 > len(code) {
		return bytecode.Instruction{}, 0, fmt.Errorf("%w: truncated switch default", ErrMalformedInput)
	}
	defaultOffset := int(int32(binary.BigEndian.Uint32(code[cur:])))
	cur += 4

	var targets []string
	var keys []int
	isTable := false
	low := 0
	opcode := int(code[pos])

	if opcode == 0xaa { // tableswitch
		isTable = true
		if cur+8 > len(code) {
			return bytecode.Instruction{}, 0, fmt.Errorf("%w: truncated tableswitch bounds", ErrMalformedInput)
		}
		lowVal := int32(binary.BigEndian.Uint32(code[cur:]))
		cur += 4
		high := int32(binary.BigEndian.Uint32(code[cur:]))
		cur += 4
		low = int(lowVal)
		n := int(high - lowVal + 1)
		for i := 0; i < n; i++ {
			if cur+4 > len(code) {
				return bytecode.Instruction{}, 0, fmt.Errorf("%w: truncated tableswitch entries", ErrMalformedInput)
			}
			off := int(int32(binary.BigEndian.Uint32(code[cur:])))
			targets = append(targets, labelAt(pos+off))
			cur += 4
		}
	} else { // lookupswitch
		if cur+4 > len(code) {
			return bytecode.Instruction{}, 0, fmt.Errorf("%w: truncated lookupswitch count", ErrMalformedInput)
		}
		npairs := int(int32(binary.BigEndian.Uint32(code[cur:])))
		cur += 4
		for i := 0; i < npairs; i++ {
			if cur+8 > len(code) {
				return bytecode.Instruction{}, 0, fmt.Errorf("%w: truncated lookupswitch entries", ErrMalformedInput)
			}
			match := int32(binary.BigEndian.Uint32(code[cur:]))
			cur += 4
			off := int(int32(binary.BigEndian.Uint32(code[cur:])))
			keys = append(keys, int(match))
			targets = append(targets, labelAt(pos+off))
			cur += 4
		}
	}

	targets = append(targets, labelAt(pos+defaultOffset))
	return bytecode.Instruction{
		Kind:          bytecode.KindSwitch,
		Opcode:        opcode,
		Targets:       targets,
		SwitchIsTable: isTable,
		SwitchLow:     low,
		SwitchKeys:    keys,
	}, cur - pos, nil
}

// collectBranchTargets scans code once to discover every byte offset a
// branch, jump, or switch instruction can transfer control to.
func collectBranchTargets(code []byte) (map[int]struct{}, error) {
	targets := make(map[int]struct{})
	pos := 0
	for pos < len(code) {
		opcode := int(code[pos])
		if isSwitch(opcode) {
			ins, width, err := decodeSwitch(code, pos, offsetAsLabel)
			if err != nil {
				return nil, err
			}
			for _, raw := range ins.Targets {
				targets[mustAtoiOffset(raw)] = struct{}{}
			}
			pos += width
			continue
		}
		if shape, ok := opcodeShapes[opcode]; ok {
			width := 1 + shape.operandBytes
			if shape.kind == bytecode.KindJump || shape.kind == bytecode.KindBranch {
				off := readBranchOffset(code, pos, shape.operandBytes)
				targets[pos+off] = struct{}{}
			}
			pos += width
			continue
		}
		pos += 1 + fixedOperandBytes[opcode]
	}
	return targets, nil
}

// offsetAsLabel lets collectBranchTargets reuse decodeSwitch's parsing
// logic before real label names exist — it encodes the offset itself as a
// string, which mustAtoiOffset decodes back to an int.
func offsetAsLabel(off int) string { return fmt.Sprintf("%d", off) }

func mustAtoiOffset(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}
