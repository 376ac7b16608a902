// Package lcd holds the display registers as decoded by the memory bus,
// ready for consumption by a renderer.
package lcd

import (
	"github.com/thelolagemann/lr35902/pkg/bits"
)

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When set, the LCD is enabled.
	Enabled bool
	// WindowTileMapAddress represents the Window Tile Map Display Select bit,
	// stored as the start address of the selected tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileDataAddress represents the BG & Window Tile Data Select bit. When
	// set, the tile data is located at 0x8000-0x8FFF. Otherwise, it is located
	// at 0x8800-0x97FF (signed).
	TileDataAddress uint16
	// BackgroundTileMapAddress represents the BG Tile Map Display Select bit,
	// stored as the start address of the selected tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of a sprite, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit.
	BackgroundEnabled bool
}

// Write decomposes value into the controller fields. It returns true
// if the write switched the display on or off.
func (c *Controller) Write(value uint8) (toggled bool) {
	enabled := bits.Test(value, 7)
	toggled = enabled != c.Enabled

	c.Enabled = enabled
	c.WindowTileMapAddress = tileMap(bits.Test(value, 6))
	c.WindowEnabled = bits.Test(value, 5)
	if bits.Test(value, 4) {
		c.TileDataAddress = 0x8000
	} else {
		c.TileDataAddress = 0x8800
	}
	c.BackgroundTileMapAddress = tileMap(bits.Test(value, 3))
	c.SpriteSize = 8 + bits.Val(value, 2)*8
	c.SpriteEnabled = bits.Test(value, 1)
	c.BackgroundEnabled = bits.Test(value, 0)

	return toggled
}

// Read composes the register value from the controller fields.
func (c *Controller) Read() uint8 {
	return bits.From(c.Enabled, 7) |
		bits.From(c.WindowTileMapAddress == 0x9C00, 6) |
		bits.From(c.WindowEnabled, 5) |
		bits.From(c.TileDataAddress == 0x8000, 4) |
		bits.From(c.BackgroundTileMapAddress == 0x9C00, 3) |
		bits.From(c.SpriteSize == 16, 2) |
		bits.From(c.SpriteEnabled, 1) |
		bits.From(c.BackgroundEnabled, 0)
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}

func tileMap(high bool) uint16 {
	if high {
		return 0x9C00
	}
	return 0x9800
}
