package parse

import (
	"errors"
	"fmt"
)

// ErrFormat matches every error returned by Load for malformed input.
var ErrFormat = errors.New("invalid uge data")

type FormatVersionError struct {
	Version uint32
}

func (e *FormatVersionError) Error() string {
	return fmt.Sprintf("uge version %d is not supported (want %d-%d)", e.Version, MinVersion, MaxVersion)
}

func (e *FormatVersionError) Unwrap() error { return ErrFormat }

type TruncatedBufferError struct {
	Offset int
	Need   int
	Len    int
	Field  string
}

func (e *TruncatedBufferError) Error() string {
	return fmt.Sprintf("uge data truncated reading %s: need %d bytes at offset %d, have %d",
		e.Field, e.Need, e.Offset, e.Len)
}

func (e *TruncatedBufferError) Unwrap() error { return ErrFormat }
