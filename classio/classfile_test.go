package classio_test

import (
	"testing"

	"github.com/jreduce/jreduce/bytecode"
	"github.com/jreduce/jreduce/classio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalClass hand-assembles the smallest class file this package's
// decoder needs to round-trip: one public method "m()V" whose Code
// attribute is a single `return` instruction, no fields, no try-catch
// entries, no class-level attributes. Constant pool: 1=UTF8"Code",
// 2=UTF8"Test", 3=Class->2, 4=UTF8"m", 5=UTF8"()V".
func buildMinimalClass(t *testing.T) []byte {
	t.Helper()
	var b []byte
	u2 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	u4 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) {
		b = append(b, 1)
		u2(uint16(len(s)))
		b = append(b, s...)
	}

	u4(0xCAFEBABE)
	u2(0) // minor
	u2(52) // major
	u2(6)  // constant_pool_count (indices 1..5)

	utf8("Code")     // 1
	utf8("Test")      // 2
	b = append(b, 7) // Class tag
	u2(2)             // 3 -> name_index
	utf8("m")         // 4
	utf8("()V")       // 5

	u2(0x0001) // access_flags
	u2(3)      // this_class
	u2(0)      // super_class
	u2(0)      // interfaces_count
	u2(0)      // fields_count

	u2(1)      // methods_count
	u2(0x0009) // method access_flags
	u2(4)      // name_index "m"
	u2(5)      // descriptor_index "()V"
	u2(1)      // attributes_count

	u2(1) // Code attribute name_index
	u4(13) // attribute_length: 2+2+4+1+2+2
	u2(0) // max_stack
	u2(0) // max_locals
	u4(1) // code_length
	b = append(b, 0xb1) // return
	u2(0) // exception_table_count
	u2(0) // Code's own attributes_count

	u2(0) // class attributes_count

	require.NotEmpty(t, b)
	return b
}

func TestParse_MinimalClass(t *testing.T) {
	data := buildMinimalClass(t)

	unit, err := classio.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Test", unit.InternalName)
	require.Len(t, unit.Methods, 1)

	m := unit.Methods[0]
	assert.Equal(t, "m", m.Name)
	assert.Equal(t, "()V", m.Descriptor)
	assert.Equal(t, "Test", m.ClassRef)
	assert.Empty(t, m.Tries)

	require.Equal(t, 1, m.List.Len())
	ret := m.List.At(0)
	assert.Equal(t, bytecode.KindReturn, ret.Kind)
	assert.Equal(t, 0xb1, ret.Opcode)
}

func TestEncode_RoundTripsUnchangedMethod(t *testing.T) {
	data := buildMinimalClass(t)

	unit, err := classio.Parse(data)
	require.NoError(t, err)

	out, err := unit.Encode()
	require.NoError(t, err)

	assert.Equal(t, data, out)
}

func TestParse_RejectsBadMagic(t *testing.T) {
	_, err := classio.Parse([]byte{0, 0, 0, 0})
	assert.ErrorIs(t, err, classio.ErrMalformedInput)
}

func TestStructuralVerifier_AcceptsTrivialMethod(t *testing.T) {
	data := buildMinimalClass(t)
	unit, err := classio.Parse(data)
	require.NoError(t, err)

	v := classio.StructuralVerifier{}
	assert.NoError(t, v.Verify(unit.Methods[0]))
}

func TestStructuralVerifier_RejectsInvalidTryCatchRange(t *testing.T) {
	data := buildMinimalClass(t)
	unit, err := classio.Parse(data)
	require.NoError(t, err)

	m := unit.Methods[0]
	m.Tries = []bytecode.TryCatchEntry{{Start: 1, End: 0, Handler: 0}}

	v := classio.StructuralVerifier{}
	assert.ErrorIs(t, v.Verify(m), classio.ErrVerifierRejected)
}
