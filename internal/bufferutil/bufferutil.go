package bufferutil

import (
	"bytes"
	"encoding/binary"
)

// Serializer writes little endian encoded values to an in-memory buffer.
type Serializer struct {
	buffer *bytes.Buffer
}

// NewSerializer returns a Serializer, optionally seeded with the contents of
// buf.
func NewSerializer(buf *bytes.Buffer) *Serializer {
	buffer := bytes.NewBuffer([]byte{})
	if buf != nil {
		buffer.Write(buf.Bytes())
	}
	return &Serializer{buffer}
}

// Bytes returns the serialized bytes.
func (s *Serializer) Bytes() []byte {
	return s.buffer.Bytes()
}

// WriteSlice writes the given bytes as they are.
func (s *Serializer) WriteSlice(val []byte) error {
	_, err := s.buffer.Write(val)
	return err
}

// WriteUint32 writes val as 4 little endian bytes.
func (s *Serializer) WriteUint32(val uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], val)
	_, err := s.buffer.Write(b[:])
	return err
}

// Wipe overwrites buf with zeroes. It is used to release secret material.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
