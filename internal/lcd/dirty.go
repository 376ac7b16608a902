package lcd

const (
	// TileCount is the number of 16 byte tiles in 0x8000 - 0x97FF.
	TileCount = 384
	// TileMapSize is the number of entries in the two tile maps
	// at 0x9800 - 0x9FFF.
	TileMapSize = 2048
)

// Dirty tracks which tiles and tile map entries have been modified since
// the renderer last cleared them.
type Dirty struct {
	Tiles    [TileCount]bool
	TileMap  [TileMapSize]bool
	AnyTile  bool
	AnyMap   bool
	modified int
}

// MarkTile marks the tile containing the VRAM address as modified.
func (d *Dirty) MarkTile(address uint16) {
	d.Tiles[(address-0x8000)>>4] = true
	d.AnyTile = true
	d.modified++
}

// MarkTileMap marks the tile map entry at the VRAM address as modified.
func (d *Dirty) MarkTileMap(address uint16) {
	d.TileMap[address-0x9800] = true
	d.AnyMap = true
	d.modified++
}

// Modified returns the number of marks since the last Clear.
func (d *Dirty) Modified() int {
	return d.modified
}

// Clear resets all tracking state.
func (d *Dirty) Clear() {
	*d = Dirty{}
}
