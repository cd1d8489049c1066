package parse

import "encoding/binary"

const textSlotSize = 256

// reader is a forward-only cursor over the file. The first out-of-range read
// records a TruncatedBufferError; later reads return zero values.
type reader struct {
	data []byte
	off  int
	err  error
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) take(n int, field string) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.data) {
		r.err = &TruncatedBufferError{Offset: r.off, Need: n, Len: len(r.data), Field: field}
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) uint32(field string) uint32 {
	b := r.take(4, field)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) int32(field string) int {
	return int(int32(r.uint32(field)))
}

func (r *reader) int(field string) int {
	return int(r.uint32(field))
}

func (r *reader) uint8(field string) int {
	b := r.take(1, field)
	if b == nil {
		return 0
	}
	return int(b[0])
}

func (r *reader) int8(field string) int {
	v := r.uint8(field)
	if v > 0x7f {
		return v - 0x100
	}
	return v
}

func (r *reader) bool(field string) bool {
	return r.uint8(field) != 0
}

func (r *reader) skip(n int, field string) {
	r.take(n, field)
}

// text reads a 256-byte slot whose first byte holds the string length.
func (r *reader) text(field string) string {
	b := r.take(textSlotSize, field)
	if b == nil {
		return ""
	}
	n := int(b[0])
	if n == 0 {
		return ""
	}
	return decodeText(b[1 : 1+n])
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}
