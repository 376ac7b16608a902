package gameboy

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/go-faster/errors"

	"github.com/thelolagemann/lr35902/internal/types"
)

// ErrStateMismatch is returned when loading a save state made with a
// different ROM.
var ErrStateMismatch = errors.New("save state belongs to a different ROM")

var _ types.Stater = (*GameBoy)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - CPU
//   - MMU
//   - Timer
//   - Joypad
//   - cycles (uint64)
func (g *GameBoy) Load(s *types.State) {
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.Timer.Load(s)
	g.Joypad.Load(s)
	g.cycles = s.Read64()
}

// Save implements the types.Stater interface.
func (g *GameBoy) Save(s *types.State) {
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.Timer.Save(s)
	g.Joypad.Save(s)
	s.Write64(g.cycles)
}

// SaveState writes a brotli compressed save state to w, tagged with
// the fingerprint of the loaded ROM.
func (g *GameBoy) SaveState(w io.Writer) error {
	s := types.NewState()
	s.Write64(g.MMU.Cart.Fingerprint())
	g.Save(s)

	bw := brotli.NewWriterLevel(w, brotli.BestCompression)
	if _, err := bw.Write(s.Bytes()); err != nil {
		return errors.Wrap(err, "write state")
	}
	if err := bw.Close(); err != nil {
		return errors.Wrap(err, "flush state")
	}

	g.Infof("saved state (%d bytes)", len(s.Bytes()))
	return nil
}

// LoadState restores a save state written by SaveState. The state is
// left untouched if the save state is invalid.
func (g *GameBoy) LoadState(r io.Reader) error {
	raw, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return errors.Wrap(err, "read state")
	}

	s := types.StateFromBytes(raw)
	fingerprint := s.Read64()
	if err := s.Err(); err != nil {
		return err
	}
	if want := g.MMU.Cart.Fingerprint(); fingerprint != want {
		return errors.Wrapf(ErrStateMismatch, "fingerprint %016x, want %016x", fingerprint, want)
	}

	backup := types.NewState()
	g.Save(backup)

	g.Load(s)
	if err := s.Done(); err != nil {
		g.Load(types.StateFromBytes(backup.Bytes()))
		return err
	}

	g.Infof("loaded state (%d bytes)", len(raw))
	return nil
}
