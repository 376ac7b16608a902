package cartridge

import (
	"fmt"
	"strings"
)

const (
	// HeaderStart is the first byte of the cartridge header.
	HeaderStart = 0x0100
	// HeaderEnd is the byte following the cartridge header.
	HeaderEnd = 0x0150
	// TypeOffset is the absolute offset of the cartridge type byte.
	TypeOffset = 0x0147
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

// String returns a human readable name for the cartridge type.
func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM ONLY"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	case MBC2, MBC2BATT:
		return "MBC2"
	case ROMRAM:
		return "ROM+RAM"
	case ROMRAMBATT:
		return "ROM+RAM+BATTERY"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// Banked returns true if the cartridge type uses an MBC1 controller.
func (t Type) Banked() bool {
	return t == MBC1 || t == MBC1RAM || t == MBC1RAMBATT
}

// Supported returns true for the cartridge types the bus can map.
func (t Type) Supported() bool {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return true
	}
	return t.Banked()
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	SGBFlag        bool
	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16
}

// parseHeader parses the 0x50 header bytes (0x0100 - 0x014F) and returns a Header.
func parseHeader(header []byte) Header {
	h := Header{}

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// parse the title, padded with zero bytes
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = string(header[0x34:0x44])
	} else {
		h.Title = string(header[0x34:0x43])
	}
	h.Title = strings.TrimRight(h.Title, "\x00 ")

	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[TypeOffset-HeaderStart])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) * (1 << (header[0x48] & 0x0F))
	h.RAMSize = ramMAP[header[0x49]]

	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// checksum computes the header checksum over 0x0134 - 0x014C.
func checksum(header []byte) uint8 {
	var sum uint8
	for _, b := range header[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
