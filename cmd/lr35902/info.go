package main

import (
	"fmt"

	"github.com/thelolagemann/lr35902/internal/cartridge"
	"github.com/thelolagemann/lr35902/internal/cpu"
	"github.com/thelolagemann/lr35902/internal/mmu"
	"github.com/thelolagemann/lr35902/pkg/utils"
)

type InfoCmd struct {
	RomPath string `arg:"" name:"rom" help:"ROM image." type:"existingfile"`
}

func (i *InfoCmd) Run(g *globals) error {
	rom, err := utils.LoadFile(i.RomPath)
	if err != nil {
		return err
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return err
	}

	h := cart.Header()
	checksum := "invalid"
	if cartridge.ValidChecksum(rom) {
		checksum = "valid"
	}
	fmt.Fprintf(g.out, "Title:       %s\n", h.Title)
	fmt.Fprintf(g.out, "Hardware:    %s\n", h.Hardware())
	fmt.Fprintf(g.out, "Type:        %s\n", h.CartridgeType)
	fmt.Fprintf(g.out, "ROM size:    %dkB\n", h.ROMSize/1024)
	fmt.Fprintf(g.out, "RAM size:    %dkB\n", h.RAMSize/1024)
	fmt.Fprintf(g.out, "Checksum:    0x%02X (%s)\n", h.HeaderChecksum, checksum)
	fmt.Fprintf(g.out, "Fingerprint: %016x\n", cart.Fingerprint())
	return nil
}

type DisasmCmd struct {
	RomPath string `arg:"" name:"rom" help:"ROM image." type:"existingfile"`

	From  uint16 `help:"Address to start from." default:"0x0100"`
	Count int    `help:"Number of instructions." default:"16"`
}

func (d *DisasmCmd) Run(g *globals) error {
	rom, err := utils.LoadFile(d.RomPath)
	if err != nil {
		return err
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return err
	}

	bus := mmu.NewMMU(cart, nil)
	address := d.From
	for n := 0; n < d.Count; n++ {
		text, length := cpu.Disassemble(bus, address)
		fmt.Fprintf(g.out, "%04X  % -9X %s\n", address, rawBytes(bus, address, length), text)
		address += uint16(length)
	}
	return nil
}

func rawBytes(bus cpu.Bus, address uint16, length int) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = bus.Read(address + uint16(i))
	}
	return b
}
