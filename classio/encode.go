package classio

import (
	"encoding/binary"
	"fmt"

	"github.com/jreduce/jreduce/bytecode"
)

// Encode reproduces every verbatim section of u unchanged and re-serializes
// each method's (possibly cloner-rewritten) InstructionList/Tries back into
// Code attribute bytes.
func (u *ClassUnit) Encode() ([]byte, error) {
	r := u.raw
	var out []byte

	out = appendU4(out, r.magic)
	out = appendU2(out, r.minorVersion)
	out = appendU2(out, r.majorVersion)
	out = appendU2(out, r.constantPoolCount)
	out = append(out, r.constantPool...)
	out = appendU2(out, r.accessFlags)
	out = appendU2(out, r.thisClass)
	out = appendU2(out, r.superClass)
	out = appendU2(out, uint16(len(r.interfaces)))
	for _, iface := range r.interfaces {
		out = appendU2(out, iface)
	}
	out = appendU2(out, r.fieldsCount)
	out = append(out, r.fields...)
	out = appendU2(out, r.methodsCount)

	unitIdx := 0
	for _, h := range r.methodHeaders {
		out = appendU2(out, h.accessFlags)
		out = appendU2(out, h.nameIndex)
		out = appendU2(out, h.descriptorIndex)

		attrCount := h.otherAttrsCount
		if h.hasCode {
			attrCount++
		}
		out = appendU2(out, attrCount)
		out = append(out, h.otherAttrs...)

		if h.hasCode {
			if unitIdx >= len(u.Methods) {
				return nil, fmt.Errorf("%w: method header/unit count mismatch", ErrMalformedInput)
			}
			body, err := encodeCodeAttribute(h, u.Methods[unitIdx], r.constantPool)
			if err != nil {
				return nil, err
			}
			out = appendU2(out, h.codeNameIndex)
			out = appendU4(out, uint32(len(body)))
			out = append(out, body...)
			unitIdx++
		}
	}

	out = appendU2(out, r.classAttrCount)
	out = append(out, r.classAttributes...)

	return out, nil
}

func encodeCodeAttribute(h methodHeader, m MethodUnit, pool []byte) ([]byte, error) {
	code, offsets, err := encodeInstructions(m.List)
	if err != nil {
		return nil, err
	}

	var body []byte
	body = appendU2(body, h.maxStack)
	body = appendU2(body, h.maxLocals)
	body = appendU4(body, uint32(len(code)))
	body = append(body, code...)

	body = appendU2(body, uint16(len(m.Tries)))
	for _, t := range m.Tries {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		start, err := byteOffsetOf(offsets, t.Start)
		if err != nil {
			return nil, err
		}
		end, err := byteOffsetOf(offsets, t.End)
		if err != nil {
			return nil, err
		}
		handler, err := byteOffsetOf(offsets, t.Handler)
		if err != nil {
			return nil, err
		}
		body = appendU2(body, uint16(start))
		body = appendU2(body, uint16(end))
		body = appendU2(body, uint16(handler))
		body = appendU2(body, classIndexFor(pool, t.Type))
	}

	body = appendU2(body, h.codeTrailerCount)
	body = append(body, h.codeTrailerAttrs...)

	return body, nil
}

// classIndexFor resolves a class name back to its constant pool Class
// entry index by scanning the pool classio otherwise treats as opaque.
// The cloner never introduces a new exception type — every cloned
// TryCatchEntry's Type string is copied from an entry that already existed
// in the original pool — so the name is always resolvable; a bare-any
// handler (name == "") maps to pool index 0 per JVM spec §4.7.3.
func classIndexFor(pool []byte, name string) uint16 {
	if name == "" {
		return 0
	}
	offsets := poolEntryOffsets(pool)
	for idx, off := range offsets {
		if off >= len(pool) || pool[off] != tagClass {
			continue
		}
		if resolveClassName(pool, uint16(idx)) == name {
			return uint16(idx)
		}
	}
	return 0
}

func byteOffsetOf(offsets []int, idx int) (int, error) {
	if idx < 0 || idx >= len(offsets) {
		if idx == len(offsets) {
			// idx one past the end (exclusive End marker at method exit).
			if len(offsets) == 0 {
				return 0, nil
			}
			return offsets[len(offsets)-1], nil
		}
		return 0, fmt.Errorf("%w: try-catch index %d out of range", ErrMalformedInput, idx)
	}
	return offsets[idx], nil
}

// encodeInstructions re-serializes list into a bytecode array, returning
// the byte offset each instruction index maps to (zero-width for
// label/line/frame pseudo-instructions, which collapse to the offset of
// the next real instruction).
func encodeInstructions(list *bytecode.InstructionList) ([]byte, []int, error) {
	n := list.Len()
	offsets := make([]int, n)
	widths := make([]int, n)
	offset := 0
	for i := 0; i < n; i++ {
		ins := list.At(i)
		offsets[i] = offset
		w, err := instructionWidth(ins, offset)
		if err != nil {
			return nil, nil, err
		}
		widths[i] = w
		offset += w
	}

	code := make([]byte, 0, offset)
	for i := 0; i < n; i++ {
		ins := list.At(i)
		b, err := encodeOneInstruction(list, ins, offsets, i)
		if err != nil {
			return nil, nil, err
		}
		code = append(code, b...)
	}
	return code, offsets, nil
}

func instructionWidth(ins bytecode.Instruction, pos int) (int, error) {
	switch ins.Kind {
	case bytecode.KindLabel, bytecode.KindLineNumber, bytecode.KindFrame:
		return 0, nil
	case bytecode.KindSwitch:
		cur := pos + 1
		for cur%4 != 0 {
			cur++
		}
		cur += 4 // default offset
		n := len(ins.Targets) - 1
		if n < 0 {
			return 0, fmt.Errorf("%w: switch instruction with no default target", ErrMalformedInput)
		}
		if ins.SwitchIsTable {
			cur += 8 + 4*n
		} else {
			cur += 4 + 8*n
		}
		return cur - pos, nil
	default:
		w := 1 + operandWidthFor(ins)
		return w, nil
	}
}

func operandWidthFor(ins bytecode.Instruction) int {
	if shape, ok := opcodeShapes[ins.Opcode]; ok {
		return shape.operandBytes
	}
	if n, ok := fixedOperandBytes[ins.Opcode]; ok {
		return n
	}
	return 0
}

func encodeOneInstruction(list *bytecode.InstructionList, ins bytecode.Instruction, offsets []int, i int) ([]byte, error) {
	switch ins.Kind {
	case bytecode.KindLabel, bytecode.KindLineNumber, bytecode.KindFrame:
		return nil, nil
	case bytecode.KindSwitch:
		return encodeSwitch(list, ins, offsets, i)
	case bytecode.KindJump, bytecode.KindBranch:
		if len(ins.Targets) == 0 {
			return nil, fmt.Errorf("%w: jump/branch instruction missing target", ErrMalformedInput)
		}
		targetIdx, err := list.IndexOfLabel(ins.Targets[0])
		if err != nil {
			return nil, err
		}
		operandBytes := operandWidthFor(ins)
		rel := offsets[targetIdx] - offsets[i]
		buf := make([]byte, 1+operandBytes)
		buf[0] = byte(ins.Opcode)
		putSigned(buf[1:], rel)
		return buf, nil
	case bytecode.KindReturn:
		return []byte{byte(ins.Opcode)}, nil
	default:
		operandBytes := operandWidthFor(ins)
		buf := make([]byte, 1+operandBytes)
		buf[0] = byte(ins.Opcode)
		if operandBytes > 0 {
			putUnsigned(buf[1:], ins.Operand)
		}
		return buf, nil
	}
}

func encodeSwitch(list *bytecode.InstructionList, ins bytecode.Instruction, offsets []int, i int) ([]byte, error) {
	pos := offsets[i]
	cur := pos + 1
	pad := 0
	for (pos+1+pad)%4 != 0 {
		pad++
	}

	buf := []byte{byte(ins.Opcode)}
	buf = append(buf, make([]byte, pad)...)
	cur += pad

	if len(ins.Targets) == 0 {
		return nil, fmt.Errorf("%w: switch instruction with no targets", ErrMalformedInput)
	}
	caseTargets := ins.Targets[:len(ins.Targets)-1]
	defaultTarget := ins.Targets[len(ins.Targets)-1]

	defIdx, err := list.IndexOfLabel(defaultTarget)
	if err != nil {
		return nil, err
	}
	defRel := offsets[defIdx] - pos
	defBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(defBuf, uint32(int32(defRel)))
	buf = append(buf, defBuf...)

	if ins.SwitchIsTable {
		low := ins.SwitchLow
		high := low + len(caseTargets) - 1
		lowBuf, highBuf := make([]byte, 4), make([]byte, 4)
		binary.BigEndian.PutUint32(lowBuf, uint32(int32(low)))
		binary.BigEndian.PutUint32(highBuf, uint32(int32(high)))
		buf = append(buf, lowBuf...)
		buf = append(buf, highBuf...)
		for _, label := range caseTargets {
			idx, err := list.IndexOfLabel(label)
			if err != nil {
				return nil, err
			}
			relBuf := make([]byte, 4)
			binary.BigEndian.PutUint32(relBuf, uint32(int32(offsets[idx]-pos)))
			buf = append(buf, relBuf...)
		}
	} else {
		npairsBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(npairsBuf, uint32(len(caseTargets)))
		buf = append(buf, npairsBuf...)
		for j, label := range caseTargets {
			key := 0
			if j < len(ins.SwitchKeys) {
				key = ins.SwitchKeys[j]
			}
			idx, err := list.IndexOfLabel(label)
			if err != nil {
				return nil, err
			}
			keyBuf, relBuf := make([]byte, 4), make([]byte, 4)
			binary.BigEndian.PutUint32(keyBuf, uint32(int32(key)))
			binary.BigEndian.PutUint32(relBuf, uint32(int32(offsets[idx]-pos)))
			buf = append(buf, keyBuf...)
			buf = append(buf, relBuf...)
		}
	}

	return buf, nil
}

func putSigned(dst []byte, v int) {
	switch len(dst) {
	case 2:
		binary.BigEndian.PutUint16(dst, uint16(int16(v)))
	case 4:
		binary.BigEndian.PutUint32(dst, uint32(int32(v)))
	}
}

func putUnsigned(dst []byte, v int) {
	switch len(dst) {
	case 1:
		dst[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(dst, uint16(v))
	case 3:
		dst[0] = byte(v >> 16)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v)
	case 4:
		binary.BigEndian.PutUint32(dst, uint32(v))
	}
}

func appendU2(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendU4(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
