package lzhuff

import (
	"fmt"

	"github.com/lzhuff/lzhuff/bitbuf"
	"github.com/lzhuff/lzhuff/container"
	"github.com/lzhuff/lzhuff/huffman"
)

// A Compressor runs both compression stages. It reuses its buffers between
// calls, so it must not be used by more than one goroutine at a time.
type Compressor struct {
	// Tokenizer performs the LZ77 stage. The default is a HashChain with
	// the default window and minimum match length.
	Tokenizer Tokenizer

	tokens []Token
}

// Compress compresses src. Each call is independent of the others.
func (c *Compressor) Compress(src []byte) (*container.Container, error) {
	out := &container.Container{Checksum: container.Checksum(src)}
	if len(src) == 0 {
		return out, nil
	}
	if c.Tokenizer == nil {
		c.Tokenizer = &HashChain{}
	}

	c.tokens = c.Tokenizer.Tokenize(c.tokens[:0], src)
	tw := bitbuf.NewWriter()
	if err := PackTokens(tw, c.tokens); err != nil {
		return nil, err
	}
	out.TokenBits = tw.Len()
	packed, pad, err := tw.Bytes()
	if err != nil {
		return nil, err
	}
	out.TokenPadding = pad

	tree, err := huffman.BuildTree(huffman.CountSymbols(packed))
	if err != nil {
		return nil, err
	}
	if out.Table, err = huffman.DeriveCodes(tree); err != nil {
		return nil, err
	}
	hw := bitbuf.NewWriter()
	if err := huffman.Encode(hw, packed, &out.Table); err != nil {
		return nil, err
	}
	out.HuffmanBits = hw.Len()
	if out.Payload, _, err = hw.Bytes(); err != nil {
		return nil, err
	}
	return out, nil
}

// Compress compresses src with the default settings.
func Compress(src []byte) (*container.Container, error) {
	return new(Compressor).Compress(src)
}

// Decompress reverses Compress. Structural problems are reported with
// ErrTruncated, ErrMalformed, or ErrDecode; no partial output is returned.
func Decompress(c *container.Container) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Table.Symbols() == 0 {
		return verify(c, []byte{})
	}
	if c.TokenBytes() > c.HuffmanBits {
		// Every code is at least one bit long.
		return nil, fmt.Errorf("%w: %d token bytes cannot come from %d bits", ErrMalformed, c.TokenBytes(), c.HuffmanBits)
	}

	hr, err := bitbuf.NewReader(c.Payload, c.HuffmanBits)
	if err != nil {
		return nil, err
	}
	packed, err := huffman.Decode(make([]byte, 0, c.TokenBytes()), hr, &c.Table)
	if err != nil {
		return nil, err
	}
	if uint64(len(packed)) != c.TokenBytes() {
		return nil, fmt.Errorf("%w: decoded %d token bytes, want %d", ErrMalformed, len(packed), c.TokenBytes())
	}

	tr, err := bitbuf.NewReader(packed, c.TokenBits)
	if err != nil {
		return nil, err
	}
	tokens, err := UnpackTokens(nil, tr)
	if err != nil {
		return nil, err
	}
	out, err := Replay(tokens)
	if err != nil {
		return nil, err
	}
	return verify(c, out)
}

func verify(c *container.Container, out []byte) ([]byte, error) {
	if sum := container.Checksum(out); sum != c.Checksum {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, sum, c.Checksum)
	}
	return out, nil
}

// Encode compresses src and appends the encoded container to dst.
func Encode(dst, src []byte) ([]byte, error) {
	c, err := Compress(src)
	if err != nil {
		return dst, err
	}
	return c.AppendBinary(dst)
}

// Decode decompresses an encoded container.
func Decode(src []byte) ([]byte, error) {
	c, err := container.Parse(src)
	if err != nil {
		return nil, err
	}
	return Decompress(c)
}
