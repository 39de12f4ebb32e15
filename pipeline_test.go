package lzhuff

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/lzhuff/lzhuff/container"
	"github.com/lzhuff/lzhuff/huffman"
)

func roundTrip(t *testing.T, src []byte) []byte {
	t.Helper()
	encoded, err := Encode(nil, src)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, src) {
		t.Fatalf("decoded output doesn't match: got %d bytes, want %d", len(decoded), len(src))
	}
	return encoded
}

func TestRoundTrip(t *testing.T) {
	random := make([]byte, 10000)
	rand.New(rand.NewSource(21)).Read(random)
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	for _, src := range [][]byte{
		[]byte("a"),
		[]byte("ab"),
		[]byte("aaaaaaaaaa"),
		[]byte("abcabcabcabc"),
		[]byte("HelloHelloHelloHelloHelloHelloHelloHelloHelloHello, world"),
		{0},
		make([]byte, 1000),
		all,
		bytes.Repeat(all, 4),
		random,
		corpus(50000, 22),
		smallAlphabet(20000, 2, 23),
	} {
		roundTrip(t, src)
	}
}

func TestRandomRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	for i := 0; i < 200; i++ {
		n := rng.Intn(600)
		var src []byte
		switch i % 3 {
		case 0:
			src = make([]byte, n)
			rng.Read(src)
		case 1:
			src = smallAlphabet(n, rng.Intn(4)+1, int64(i))
		default:
			src = corpus(n, int64(i))
		}
		roundTrip(t, src)
	}
}

func TestEmptyInput(t *testing.T) {
	c, err := Compress(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Table.Symbols() != 0 || c.TokenBits != 0 || c.HuffmanBits != 0 || len(c.Payload) != 0 {
		t.Fatalf("empty input gave %+v", c)
	}
	out, err := Decompress(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d bytes", len(out))
	}
	roundTrip(t, []byte{})
}

func TestSingleSymbol(t *testing.T) {
	src := []byte("zzzzzzzzzz")
	c, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompress(c)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("got %q", out)
	}

	// Two literal zeros pack to 18 zero bits, padded to three zero bytes,
	// so the Huffman stage sees a one-symbol alphabet.
	src = []byte{0, 0}
	c, err = Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	if c.Table.Symbols() != 1 || c.Table[0] != (huffman.Code{Bits: 0, Len: 1}) {
		t.Fatalf("table has %d symbols, code %v", c.Table.Symbols(), c.Table[0])
	}
	if c.TokenBits != 18 || c.TokenPadding != 6 || c.HuffmanBits != 3 {
		t.Fatalf("got %d token bits, %d padding, %d huffman bits", c.TokenBits, c.TokenPadding, c.HuffmanBits)
	}
	roundTrip(t, src)
}

func TestContainerFields(t *testing.T) {
	src := corpus(4000, 25)
	c, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	tokens := new(HashChain).Tokenize(nil, src)
	if c.TokenBits != PackedLen(tokens) {
		t.Fatalf("TokenBits = %d, want %d", c.TokenBits, PackedLen(tokens))
	}
	if (c.TokenBits+uint64(c.TokenPadding))%8 != 0 || c.TokenPadding > 7 {
		t.Fatalf("bad padding %d for %d bits", c.TokenPadding, c.TokenBits)
	}
	if uint64(len(c.Payload)) != (c.HuffmanBits+7)/8 {
		t.Fatalf("%d payload bytes for %d bits", len(c.Payload), c.HuffmanBits)
	}
	if c.Checksum != container.Checksum(src) {
		t.Fatal("wrong checksum")
	}
}

func TestCompressorTokenizers(t *testing.T) {
	src := corpus(8000, 26)
	a, err := (&Compressor{Tokenizer: &BruteForce{}}).Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := (&Compressor{Tokenizer: &HashChain{}}).Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	ea, _ := a.MarshalBinary()
	eb, _ := b.MarshalBinary()
	if !bytes.Equal(ea, eb) {
		t.Fatal("BruteForce and HashChain containers differ")
	}
}

func TestTruncatedPayload(t *testing.T) {
	for _, src := range [][]byte{[]byte("abcabcabcabc"), []byte("zzzzzzzzzz"), corpus(3000, 27)} {
		encoded := roundTrip(t, src)
		if _, err := Decode(encoded[:len(encoded)-1]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("got %v, want ErrTruncated", err)
		}

		c, err := Compress(src)
		if err != nil {
			t.Fatal(err)
		}
		c.Payload = c.Payload[:len(c.Payload)-1]
		if _, err := Decompress(c); !errors.Is(err, ErrTruncated) {
			t.Fatalf("got %v, want ErrTruncated", err)
		}
	}
}

func TestEveryPrefixFails(t *testing.T) {
	encoded := roundTrip(t, corpus(500, 28))
	for n := 0; n < len(encoded); n++ {
		if _, err := Decode(encoded[:n]); err == nil {
			t.Fatalf("decoded a %d-byte prefix of a %d-byte container", n, len(encoded))
		}
	}
}

func TestCorruptPayload(t *testing.T) {
	src := corpus(3000, 29)
	c, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(30))
	for i := 0; i < 100; i++ {
		bad := *c
		bad.Payload = append([]byte(nil), c.Payload...)
		k := rng.Intn(int(c.HuffmanBits))
		bad.Payload[k/8] ^= 0x80 >> uint(k%8)
		out, err := Decompress(&bad)
		if err == nil {
			// Different tokens can spell the same data.
			if !bytes.Equal(out, src) {
				t.Fatalf("corrupt payload decoded to the wrong data without error")
			}
			continue
		}
		if !errors.Is(err, ErrDecode) && !errors.Is(err, ErrMalformed) &&
			!errors.Is(err, ErrTruncated) && !errors.Is(err, ErrChecksum) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
}

func TestMismatchedCounts(t *testing.T) {
	src := corpus(2000, 31)
	c, err := Compress(src)
	if err != nil {
		t.Fatal(err)
	}

	bad := *c
	bad.TokenBits += 8
	if _, err := Decompress(&bad); !errors.Is(err, ErrMalformed) {
		t.Fatalf("extra token bytes: got %v", err)
	}

	bad = *c
	bad.TokenPadding = (c.TokenPadding + 1) % 8
	if _, err := Decompress(&bad); !errors.Is(err, ErrMalformed) {
		t.Fatalf("wrong padding: got %v", err)
	}

	bad = *c
	bad.Checksum++
	if _, err := Decompress(&bad); !errors.Is(err, ErrChecksum) {
		t.Fatalf("wrong checksum: got %v", err)
	}
}
