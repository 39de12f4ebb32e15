// Command lzhuff compresses and decompresses files.
//
// Usage:
//
//	lzhuff [-d] [-o output] [-brute] [-tokens] [-v] [input]
//
// With no input, or an input of "-", it reads standard input.
// With no -o, or -o -, it writes standard output.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lzhuff/lzhuff"
)

var (
	dashd      bool
	dashv      bool
	dashbrute  bool
	dashtokens bool
	dasho      string
	dashw      int
	dashm      int
)

func init() {
	flag.BoolVar(&dashd, "d", false, "decompress")
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashbrute, "brute", false, "use the brute-force match finder")
	flag.BoolVar(&dashtokens, "tokens", false, "print the token stream as text instead of compressing")
	flag.StringVar(&dasho, "o", "-", "output file (or - for stdout)")
	flag.IntVar(&dashw, "w", lzhuff.MaxWindow, "match window in bytes (1-255)")
	flag.IntVar(&dashm, "m", lzhuff.DefaultMinMatch, "minimum match length")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func readInput(name string) []byte {
	var (
		buf []byte
		err error
	)
	if name == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(name)
	}
	if err != nil {
		exitf("reading %s: %s\n", name, err)
	}
	return buf
}

func writeOutput(name string, buf []byte) {
	var err error
	if name == "-" {
		_, err = os.Stdout.Write(buf)
	} else {
		err = os.WriteFile(name, buf, 0644)
	}
	if err != nil {
		exitf("writing %s: %s\n", name, err)
	}
}

func tokenizer() lzhuff.Tokenizer {
	if dashw < 1 || dashw > lzhuff.MaxWindow {
		exitf("window must be between 1 and %d\n", lzhuff.MaxWindow)
	}
	if dashm < 1 || dashm > lzhuff.MaxWindow {
		exitf("minimum match must be between 1 and %d\n", lzhuff.MaxWindow)
	}
	p := lzhuff.GreedyParser{MinMatch: dashm}
	if dashbrute {
		return &lzhuff.BruteForce{Window: dashw, Parser: p}
	}
	return &lzhuff.HashChain{Window: dashw, Parser: p}
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("lzhuff: ")

	args := flag.Args()
	if len(args) > 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	in := readInput(input)

	var out []byte
	switch {
	case dashd:
		var err error
		out, err = lzhuff.Decode(in)
		if err != nil {
			exitf("decompressing %s: %s\n", input, err)
		}
	case dashtokens:
		tokens := tokenizer().Tokenize(nil, in)
		out = lzhuff.TextEncoder{}.Encode(nil, tokens)
		out = append(out, '\n')
		if dashv {
			log.Printf("%d bytes, %d tokens, %d packed bits", len(in), len(tokens), lzhuff.PackedLen(tokens))
		}
	default:
		c := lzhuff.Compressor{Tokenizer: tokenizer()}
		ct, err := c.Compress(in)
		if err != nil {
			exitf("compressing %s: %s\n", input, err)
		}
		out, err = ct.AppendBinary(nil)
		if err != nil {
			exitf("encoding %s: %s\n", input, err)
		}
		if dashv {
			log.Printf("%d -> %d bytes (%d token bits, %d huffman bits, %d codes)",
				len(in), len(out), ct.TokenBits, ct.HuffmanBits, ct.Table.Symbols())
		}
	}
	writeOutput(dasho, out)
}
