package lzhuff

import (
	"errors"

	"github.com/lzhuff/lzhuff/container"
	"github.com/lzhuff/lzhuff/huffman"
)

// Errors returned by Compress and Decompress. They may be wrapped; use
// errors.Is to test for them.
var (
	// ErrEmptyInput is returned when a Huffman table is built over no
	// symbols. Compress never returns it: empty input gives an empty
	// container.
	ErrEmptyInput = huffman.ErrEmptyInput

	// ErrDecode means the Huffman payload does not resolve to codes in
	// the table.
	ErrDecode = huffman.ErrDecode

	// ErrTruncated means a field or token runs past the available data.
	ErrTruncated = container.ErrTruncated

	// ErrMalformed means a container or token stream is structurally
	// invalid.
	ErrMalformed = container.ErrMalformed

	// ErrChecksum means the data decoded without error but does not
	// match the stored checksum.
	ErrChecksum = errors.New("lzhuff: checksum mismatch")
)
