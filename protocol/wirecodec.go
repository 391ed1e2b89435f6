package protocol

import (
	"encoding/binary"
)

// writer accumulates a command or response payload with explicit manual
// marshalling (no reflection): callers write fields in declaration order,
// and the writer never fails — total size is bounded at the call site by
// the report-ID selector.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 64)}
}

func (w *writer) Bytes() []byte { return w.buf }

func (w *writer) putByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) putBool(v bool) {
	if v {
		w.putByte(1)
	} else {
		w.putByte(0)
	}
}

func (w *writer) putU8(v uint8) {
	w.putByte(v)
}

func (w *writer) putU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *writer) putU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// putVarUint writes v as a standard base-128 varint, least significant
// group first, matching the variable-length integer encoding described by
// the wire format.
func (w *writer) putVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf = append(w.buf, tmp[:n]...)
}

// putBytes writes a length-prefixed byte sequence: a varint length followed
// by the raw bytes.
func (w *writer) putBytes(b []byte) {
	w.putVarUint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *writer) putString(s string) {
	w.putBytes([]byte(s))
}

// reader decodes a payload produced by writer, failing with a typed
// ProtocolError on any malformed input. The codec is total: any well-formed
// byte string round-trips, any other yields one of these errors.
type reader struct {
	buf []byte
	pos int
}

func newReader(b []byte) *reader {
	return &reader{buf: b}
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) getByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, NewProtocolError(ErrDeserializeUnexpectedEnd, "expected 1 byte")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) getBool() (bool, error) {
	b, err := r.getByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, NewProtocolError(ErrDeserializeBadBool, "boolean discriminant not 0 or 1")
	}
}

func (r *reader) getU8() (uint8, error) {
	return r.getByte()
}

func (r *reader) getU16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, NewProtocolError(ErrDeserializeUnexpectedEnd, "expected 2 bytes")
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

func (r *reader) getU32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, NewProtocolError(ErrDeserializeUnexpectedEnd, "expected 4 bytes")
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *reader) getVarUint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n == 0 {
		return 0, NewProtocolError(ErrDeserializeUnexpectedEnd, "truncated varint")
	}
	if n < 0 {
		return 0, NewProtocolError(ErrDeserializeBadVarint, "varint overflow")
	}
	r.pos += n
	return v, nil
}

func (r *reader) getBytes() ([]byte, error) {
	n, err := r.getVarUint()
	if err != nil {
		return nil, err
	}
	if uint64(r.remaining()) < n {
		return nil, NewProtocolError(ErrDeserializeUnexpectedEnd, "length-prefixed sequence exceeds buffer")
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return out, nil
}

func (r *reader) getString() (string, error) {
	b, err := r.getBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// requireExhausted fails with DeserializeBadEncoding if the payload carries
// trailing bytes past the fields the variant declares — the codec must be
// self-delimiting, not merely prefix-compatible.
func (r *reader) requireExhausted() error {
	if r.remaining() != 0 {
		return NewProtocolError(ErrDeserializeBadEncoding, "trailing bytes after decoded payload")
	}
	return nil
}
