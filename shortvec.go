package htlc

import (
	"encoding/binary"

	"github.com/iov-one/htlc/errors"
)

// MaxShortVec is the largest length a compact-u16 can carry.
const MaxShortVec = 0xffff

// AppendShortVec appends n as a compact-u16: seven bits per byte, least
// significant first, high bit set on every byte but the last.
func AppendShortVec(dst []byte, n int) []byte {
	if n < 0 || n > MaxShortVec {
		panic("shortvec: length out of range")
	}
	v := uint32(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// ReadShortVec decodes a compact-u16 from the start of b. It returns the
// value and the number of bytes consumed.
func ReadShortVec(b []byte) (int, int, error) {
	var out uint32
	for i := 0; i < 3; i++ {
		if i >= len(b) {
			return 0, 0, errors.Wrap(errors.ErrInput, "shortvec: truncated")
		}
		out |= uint32(b[i]&0x7f) << (7 * uint(i))
		if b[i]&0x80 == 0 {
			if i > 0 && b[i] == 0 {
				return 0, 0, errors.Wrap(errors.ErrInput, "shortvec: non-canonical")
			}
			if out > MaxShortVec {
				return 0, 0, errors.Wrap(errors.ErrInput, "shortvec: overflow")
			}
			return int(out), i + 1, nil
		}
	}
	return 0, 0, errors.Wrap(errors.ErrInput, "shortvec: too long")
}

// Decoder reads little endian fields from a byte slice. The first failure
// sticks: later reads return zero values and Err reports it.
type Decoder struct {
	buf []byte
	off int
	err error
}

// NewDecoder returns a Decoder reading b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (d *Decoder) take(n int, what string) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.buf)-d.off < n {
		d.err = errors.Wrapf(errors.ErrInput, "%s: want %d bytes, have %d", what, n, len(d.buf)-d.off)
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

// Byte reads one byte.
func (d *Decoder) Byte(what string) byte {
	if b := d.take(1, what); b != nil {
		return b[0]
	}
	return 0
}

// Uint64 reads a little endian u64.
func (d *Decoder) Uint64(what string) uint64 {
	if b := d.take(8, what); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// Int64 reads a little endian i64.
func (d *Decoder) Int64(what string) int64 {
	return int64(d.Uint64(what))
}

// Pubkey reads a 32 byte key.
func (d *Decoder) Pubkey(what string) Pubkey {
	var pk Pubkey
	copy(pk[:], d.take(PubkeyLength, what))
	return pk
}

// Bytes reads n raw bytes. The result is a copy.
func (d *Decoder) Bytes(n int, what string) []byte {
	b := d.take(n, what)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// ShortVec reads a compact-u16 length.
func (d *Decoder) ShortVec(what string) int {
	if d.err != nil {
		return 0
	}
	n, size, err := ReadShortVec(d.buf[d.off:])
	if err != nil {
		d.err = errors.Wrap(err, what)
		return 0
	}
	d.off += size
	return n
}

// ShortVecBytes reads a compact-u16 length followed by that many bytes.
func (d *Decoder) ShortVecBytes(what string) []byte {
	n := d.ShortVec(what)
	return d.Bytes(n, what)
}

// Rest returns everything not read yet.
func (d *Decoder) Rest() []byte {
	if d.err != nil {
		return nil
	}
	b := d.buf[d.off:]
	d.off = len(d.buf)
	return b
}

// Offset returns the number of bytes consumed.
func (d *Decoder) Offset() int {
	return d.off
}

// Err returns the first failure, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Finish returns the first failure, or an error if input is left over.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.buf) {
		return errors.Wrapf(errors.ErrInput, "%d trailing bytes", len(d.buf)-d.off)
	}
	return nil
}
