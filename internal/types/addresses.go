package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register is used to transfer data between the
	// CPU and the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz.
	// Writing any value to it resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter. When TIMA overflows, it is
	// reloaded from TMA and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the timer modulo, loaded into TIMA on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//	Bit 2   - Timer Enable
	//	Bit 1-0 - Input Clock Select
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC is the main LCD control register. See lcd.Controller
	// for the meaning of each bit.
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register. See lcd.Status.
	STAT HardwareAddress = 0xFF41
	// SCY is the background Y scroll position.
	SCY HardwareAddress = 0xFF42
	// SCX is the background X scroll position.
	SCX HardwareAddress = 0xFF43
	// LY is the current line being drawn. It is read-only to
	// the CPU; a write resets it to 0.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to raise the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer. Writing n copies the 160
	// bytes at n<<8 into OAM (0xFE00 - 0xFE9F).
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette. Each pair of bits maps a
	// colour number to a shade.
	//
	//	Bit 7-6 - Colour for index 3
	//	Bit 5-4 - Colour for index 2
	//	Bit 3-2 - Colour for index 1
	//	Bit 1-0 - Colour for index 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is object palette 0. Index 0 is transparent.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is object palette 1. Index 0 is transparent.
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B

	// IE is the interrupt enable register, laid out like IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the 64kB address space.
const (
	ROMBank0     uint16 = 0x0000 // 0x0000 - 0x3FFF fixed ROM bank
	ROMBankN     uint16 = 0x4000 // 0x4000 - 0x7FFF switchable ROM bank
	TileData     uint16 = 0x8000 // 0x8000 - 0x97FF tile data
	TileMap      uint16 = 0x9800 // 0x9800 - 0x9FFF tile maps
	ExternalRAM  uint16 = 0xA000 // 0xA000 - 0xBFFF cartridge RAM
	InternalRAM  uint16 = 0xC000 // 0xC000 - 0xDFFF work RAM
	EchoRAM      uint16 = 0xE000 // 0xE000 - 0xFDFF mirror of work RAM
	OAM          uint16 = 0xFE00 // 0xFE00 - 0xFE9F sprite attributes
	IORegisters  uint16 = 0xFF00 // 0xFF00 - 0xFF7F
	HighRAM      uint16 = 0xFF80 // 0xFF80 - 0xFFFE
	EchoDistance uint16 = EchoRAM - InternalRAM
)
