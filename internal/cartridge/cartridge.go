// Package cartridge provides the cartridge images the memory bus maps
// into 0x0000 - 0x7FFF, along with their bank controller state.
package cartridge

import (
	"github.com/cespare/xxhash"
	"github.com/go-faster/errors"

	"github.com/thelolagemann/lr35902/internal/types"
)

var (
	// ErrUnsupportedType is returned when the header names a bank
	// controller the bus does not implement.
	ErrUnsupportedType = errors.New("unsupported cartridge type")
	// ErrShortImage is returned when the image cannot hold a header.
	ErrShortImage = errors.New("cartridge image too small")
)

// Cartridge represents a basic game cartridge.
type Cartridge interface {
	// Read returns the byte at address, which must be below 0x8000.
	Read(address uint16) uint8
	// Write handles a write below 0x8000. Banked cartridges treat it
	// as a controller command, others ignore it.
	Write(address uint16, value uint8)

	Header() *Header
	// Banked returns true when writes are bank controller commands.
	Banked() bool
	// ROMBank returns the bank mapped at 0x4000 - 0x7FFF.
	ROMBank() int
	// Fingerprint identifies the image, for matching save states.
	Fingerprint() uint64

	types.Stater
}

type baseCartridge struct {
	rom         []byte
	header      Header
	fingerprint uint64
}

func (c *baseCartridge) Header() *Header {
	return &c.header
}

func (c *baseCartridge) Fingerprint() uint64 {
	return c.fingerprint
}

// New parses the header of rom and returns the matching cartridge.
func New(rom []byte) (Cartridge, error) {
	if len(rom) < HeaderEnd {
		return nil, errors.Wrapf(ErrShortImage, "%d bytes", len(rom))
	}

	base := baseCartridge{
		header:      parseHeader(rom[HeaderStart:HeaderEnd]),
		fingerprint: Fingerprint(rom),
	}

	t := base.header.CartridgeType
	switch {
	case t.Banked():
		base.rom = pad(rom, 0x4000)
		return NewMemoryBankedCartridge1(base), nil
	case t.Supported():
		base.rom = pad(rom, 0x8000)
		return NewROMCartridge(base), nil
	}

	return nil, errors.Wrapf(ErrUnsupportedType, "type 0x%02X (%s)", uint8(t), t)
}

// Fingerprint returns the xxhash of a ROM image.
func Fingerprint(rom []byte) uint64 {
	return xxhash.Sum64(rom)
}

// ValidChecksum reports whether the header checksum of rom matches.
func ValidChecksum(rom []byte) bool {
	if len(rom) < HeaderEnd {
		return false
	}
	header := rom[HeaderStart:HeaderEnd]
	return checksum(header) == header[0x4D]
}

// pad returns rom extended with zeroes to at least 0x8000 bytes and
// to a multiple of size.
func pad(rom []byte, size int) []byte {
	n := len(rom)
	if n < 0x8000 {
		n = 0x8000
	}
	if r := n % size; r != 0 {
		n += size - r
	}
	if n == len(rom) {
		return rom
	}
	padded := make([]byte, n)
	copy(padded, rom)
	return padded
}
