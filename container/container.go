// Package container implements the persisted form of a compressed stream:
// the Huffman code table, the bit counts of both compression stages, a
// checksum of the original data, and the Huffman-coded payload.
//
// The layout is explicit and versioned. All integers are little-endian.
//
//	magic       4 bytes  "LZHF"
//	version     uint8
//	nsym        uint16   number of table entries, 0-256
//	entries     nsym times: symbol uint8, length uint8 (1-64),
//	            code in ceil(length/8) bytes, most significant bit first
//	tokenBits   uint64   packed token bits, before padding
//	tokenPad    uint8    zero bits added to reach a byte boundary
//	huffBits    uint64   Huffman-coded bits, before padding
//	checksum    uint32   xxHash32 (seed 0) of the uncompressed data
//	payloadLen  uint64   must equal ceil(huffBits/8)
//	payload     payloadLen bytes
package container

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lzhuff/lzhuff/bitbuf"
	"github.com/lzhuff/lzhuff/huffman"
	"github.com/pierrec/xxHash/xxHash32"
)

// Version is the format version written by AppendBinary.
const Version = 1

var magic = [4]byte{'L', 'Z', 'H', 'F'}

var (
	// ErrMalformed is returned for containers whose fields are invalid or
	// inconsistent with each other.
	ErrMalformed = errors.New("container: malformed")

	// ErrTruncated is returned when the input ends before a declared field.
	ErrTruncated = bitbuf.ErrTruncated
)

// A Container holds everything needed to reconstruct the original data.
type Container struct {
	// Table is the code table used by the Huffman stage. It is stored
	// verbatim, so decoding never rebuilds a tree.
	Table huffman.Table

	// TokenBits is the length of the packed token stream, and TokenPadding
	// the number of zero bits appended to it before Huffman coding.
	TokenBits    uint64
	TokenPadding uint8

	// HuffmanBits is the number of meaningful bits in Payload.
	HuffmanBits uint64

	// Checksum is the xxHash32 of the uncompressed data.
	Checksum uint32

	Payload []byte
}

// Checksum returns the checksum stored for data.
func Checksum(data []byte) uint32 {
	return xxHash32.Checksum(data, 0)
}

// TokenBytes returns the length of the padded token stream in bytes.
func (c *Container) TokenBytes() uint64 {
	return (c.TokenBits + uint64(c.TokenPadding)) / 8
}

// Validate checks that the fields of c are consistent with each other.
func (c *Container) Validate() error {
	nsym := c.Table.Symbols()
	if nsym == 0 {
		if c.TokenBits != 0 || c.TokenPadding != 0 || c.HuffmanBits != 0 || len(c.Payload) != 0 {
			return fmt.Errorf("%w: data present with an empty code table", ErrMalformed)
		}
		return nil
	}
	if err := c.Table.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.TokenPadding > 7 || (c.TokenBits+uint64(c.TokenPadding))%8 != 0 {
		return fmt.Errorf("%w: %d token bits with %d bits of padding", ErrMalformed, c.TokenBits, c.TokenPadding)
	}
	if c.TokenBits == 0 {
		return fmt.Errorf("%w: code table present with no tokens", ErrMalformed)
	}
	want := payloadLen(c.HuffmanBits)
	switch {
	case uint64(len(c.Payload)) < want:
		return fmt.Errorf("%w: payload is %d bytes, %d bits declared", ErrTruncated, len(c.Payload), c.HuffmanBits)
	case uint64(len(c.Payload)) > want:
		return fmt.Errorf("%w: payload is %d bytes, %d bits declared", ErrMalformed, len(c.Payload), c.HuffmanBits)
	}
	return nil
}

func payloadLen(nbits uint64) uint64 {
	return nbits/8 + (nbits%8+7)/8
}

// AppendBinary appends the encoded form of c to dst.
func (c *Container) AppendBinary(dst []byte) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return dst, err
	}
	dst = append(dst, magic[:]...)
	dst = append(dst, Version)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(c.Table.Symbols()))
	for s, code := range c.Table {
		if code.Len == 0 {
			continue
		}
		dst = append(dst, byte(s), code.Len)
		dst = appendCode(dst, code)
	}
	dst = binary.LittleEndian.AppendUint64(dst, c.TokenBits)
	dst = append(dst, c.TokenPadding)
	dst = binary.LittleEndian.AppendUint64(dst, c.HuffmanBits)
	dst = binary.LittleEndian.AppendUint32(dst, c.Checksum)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(c.Payload)))
	dst = append(dst, c.Payload...)
	return dst, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Container) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(nil)
}

// appendCode writes the low code.Len bits of code.Bits, left-aligned in
// whole bytes.
func appendCode(dst []byte, code huffman.Code) []byte {
	n := (int(code.Len) + 7) / 8
	v := code.Bits << (uint(n)*8 - uint(code.Len))
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(uint(i)*8)))
	}
	return dst
}

// A reader consumes fixed-width fields from a byte slice.
type reader struct {
	b   []byte
	off int
}

func (r *reader) next(n int, what string) ([]byte, error) {
	if len(r.b)-r.off < n {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left", ErrTruncated, what, n, r.off, len(r.b)-r.off)
	}
	b := r.b[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) uint8(what string) (uint8, error) {
	b, err := r.next(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint16(what string) (uint16, error) {
	b, err := r.next(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32(what string) (uint32, error) {
	b, err := r.next(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) uint64(what string) (uint64, error) {
	b, err := r.next(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It checks every
// field before trusting it, and fails rather than recover partial data.
func (c *Container) UnmarshalBinary(data []byte) error {
	*c = Container{}
	r := &reader{b: data}

	m, err := r.next(len(magic), "magic")
	if err != nil {
		return err
	}
	if [4]byte{m[0], m[1], m[2], m[3]} != magic {
		return fmt.Errorf("%w: bad magic %q", ErrMalformed, m)
	}
	v, err := r.uint8("version")
	if err != nil {
		return err
	}
	if v != Version {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformed, v)
	}

	nsym, err := r.uint16("symbol count")
	if err != nil {
		return err
	}
	if nsym > 256 {
		return fmt.Errorf("%w: %d symbols", ErrMalformed, nsym)
	}
	for i := 0; i < int(nsym); i++ {
		s, err := r.uint8("symbol")
		if err != nil {
			return err
		}
		n, err := r.uint8("code length")
		if err != nil {
			return err
		}
		if n == 0 || n > huffman.MaxCodeLen {
			return fmt.Errorf("%w: symbol %#x has %d-bit code", ErrMalformed, s, n)
		}
		if c.Table[s].Len != 0 {
			return fmt.Errorf("%w: symbol %#x appears twice", ErrMalformed, s)
		}
		b, err := r.next((int(n)+7)/8, "code")
		if err != nil {
			return err
		}
		var bits uint64
		for _, x := range b {
			bits = bits<<8 | uint64(x)
		}
		shift := uint(len(b))*8 - uint(n)
		if bits&(1<<shift-1) != 0 {
			return fmt.Errorf("%w: symbol %#x code has stray low bits", ErrMalformed, s)
		}
		c.Table[s] = huffman.Code{Bits: bits >> shift, Len: n}
	}

	if c.TokenBits, err = r.uint64("token bit count"); err != nil {
		return err
	}
	if c.TokenPadding, err = r.uint8("token padding"); err != nil {
		return err
	}
	if c.HuffmanBits, err = r.uint64("huffman bit count"); err != nil {
		return err
	}
	if c.Checksum, err = r.uint32("checksum"); err != nil {
		return err
	}
	plen, err := r.uint64("payload length")
	if err != nil {
		return err
	}
	if plen != payloadLen(c.HuffmanBits) {
		return fmt.Errorf("%w: payload length %d does not hold %d bits", ErrMalformed, plen, c.HuffmanBits)
	}
	if plen > uint64(len(data)-r.off) {
		return fmt.Errorf("%w: payload needs %d bytes, %d left", ErrTruncated, plen, len(data)-r.off)
	}
	payload, _ := r.next(int(plen), "payload")
	if r.off != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(data)-r.off)
	}
	c.Payload = append([]byte(nil), payload...)

	return c.Validate()
}

// Parse decodes a container from data.
func Parse(data []byte) (*Container, error) {
	c := new(Container)
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return c, nil
}
