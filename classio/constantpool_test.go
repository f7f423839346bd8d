package classio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipConstantPoolEntry_UTF8(t *testing.T) {
	data := []byte{tagUTF8, 0x00, 0x03, 'f', 'o', 'o', 0xff}
	length, wide, err := skipConstantPoolEntry(data, 0)
	require.NoError(t, err)
	assert.False(t, wide)
	assert.Equal(t, 6, length)
}

func TestSkipConstantPoolEntry_LongIsWide(t *testing.T) {
	data := make([]byte, 9)
	data[0] = tagLong
	length, wide, err := skipConstantPoolEntry(data, 0)
	require.NoError(t, err)
	assert.True(t, wide)
	assert.Equal(t, 9, length)
}

func TestSkipConstantPoolEntry_UnrecognizedTag(t *testing.T) {
	_, _, err := skipConstantPoolEntry([]byte{99}, 0)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestSkipConstantPool_WalksDoubleWidthEntries(t *testing.T) {
	var data []byte
	data = append(data, tagLong)
	data = append(data, make([]byte, 8)...) // index 1, occupies 1 and 2
	data = append(data, tagClass, 0x00, 0x01)
	end, err := skipConstantPool(data, 0, 4) // indices 1..3, index 2 is long's phantom slot
	require.NoError(t, err)
	assert.Equal(t, len(data), end)
}
