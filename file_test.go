package facoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileRoundTrip reproduces the file-framing concrete scenario:
// WriteToFile's varint-prefixed payload round-trips through
// ReadFromFile into an independent codec.
func TestFileRoundTrip(t *testing.T) {
	data := randomSymbols(11, 16, 400)
	model := NewAdaptiveDataModel(16)

	codec := NewArithmeticCodec(4096, nil)
	codec.StartEncoder()
	for _, d := range data {
		codec.EncodeAdaptive(d, model)
	}

	var buf bytes.Buffer
	n, err := codec.WriteToFile(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(buf.Len()), n)

	model.Reset()
	codec2 := NewArithmeticCodec(4096, nil)
	require.NoError(t, codec2.ReadFromFile(&buf))

	got := make([]uint32, len(data))
	for i := range got {
		got[i] = codec2.DecodeAdaptive(model)
	}
	codec2.StopDecoder()

	assert.Equal(t, data, got)
}

func TestFileRoundTripMultiByteVarint(t *testing.T) {
	data := randomSymbols(12, 256, 5000)
	model := NewStaticDataModelWithDistribution(256, nil)

	codec := NewArithmeticCodec(uint32(len(data))*2+64, nil)
	codec.StartEncoder()
	for _, d := range data {
		codec.EncodeStatic(d, model)
	}

	var buf bytes.Buffer
	_, err := codec.WriteToFile(&buf)
	require.NoError(t, err)
	require.Greater(t, buf.Len(), 127) // forces a multi-byte varint header

	codec2 := NewArithmeticCodec(uint32(len(data))*2+64, nil)
	require.NoError(t, codec2.ReadFromFile(&buf))

	got := make([]uint32, len(data))
	for i := range got {
		got[i] = codec2.DecodeStatic(model)
	}
	codec2.StopDecoder()

	assert.Equal(t, data, got)
}

func TestReadFromFileOverflow(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x80, 0x80, 0x01}) // varint for 16384
	buf.Write(make([]byte, 16384))

	codec := NewArithmeticCodec(8, nil)
	assert.Panics(t, func() { _ = codec.ReadFromFile(&buf) })
}
