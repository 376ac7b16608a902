package types

import (
	"github.com/go-faster/errors"
)

// ErrStateTruncated is reported by State.Err when a read ran past
// the end of the underlying data.
var ErrStateTruncated = errors.New("state: truncated data")

// ErrStateTrailing is returned by State.Done when data is left over
// after the last read.
var ErrStateTrailing = errors.New("state: trailing data")

// State is a flat, little-endian byte stream used to save and
// restore the emulator between runs. Values must be read back in the
// same order they were written.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new, empty state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x10200),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write64(value uint64) {
	for i := 0; i < 8; i++ {
		s.raw = append(s.raw, byte(value>>(8*i)))
	}
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// take returns the next n bytes, or nil once the data is exhausted.
func (s *State) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if s.readPosition+n > len(s.raw) {
		s.err = errors.Wrapf(ErrStateTruncated, "need %d bytes at offset %d", n, s.readPosition)
		return nil
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	b := s.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *State) Read16() uint16 {
	b := s.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (s *State) Read64() uint64 {
	b := s.take(8)
	var v uint64
	for i := range b {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	copy(p, s.take(len(p)))
}

// Err returns the first error encountered while reading.
func (s *State) Err() error {
	return s.err
}

// Done returns the read error, if any, or ErrStateTrailing when
// unread data remains.
func (s *State) Done() error {
	if s.err != nil {
		return s.err
	}
	if n := len(s.raw) - s.readPosition; n > 0 {
		return errors.Wrapf(ErrStateTrailing, "%d bytes after offset %d", n, s.readPosition)
	}
	return nil
}

// Bytes returns the serialized state.
func (s *State) Bytes() []byte {
	return s.raw
}
