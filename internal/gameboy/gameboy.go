// Package gameboy ties the CPU, the memory bus, the interrupt
// controller, the timer and the joypad into a single emulator context,
// and paces execution into frames.
package gameboy

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/thelolagemann/lr35902/internal/cartridge"
	"github.com/thelolagemann/lr35902/internal/cpu"
	"github.com/thelolagemann/lr35902/internal/interrupts"
	"github.com/thelolagemann/lr35902/internal/joypad"
	"github.com/thelolagemann/lr35902/internal/mmu"
	"github.com/thelolagemann/lr35902/internal/serial"
	"github.com/thelolagemann/lr35902/internal/timer"
	"github.com/thelolagemann/lr35902/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224
	// FrameTime is the wall clock duration of a frame.
	FrameTime = time.Second / 60

	// minStepCycles is the least a step counts towards a cycle budget,
	// so that a run of NOPs still advances the frame.
	minStepCycles = 4
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Controller
	Joypad     *joypad.State
	Timer      *timer.Controller

	log.Logger

	// total clock cycles executed
	cycles uint64

	historySize int
	observer    func(Snapshot)
	serialOut   io.Writer

	mu     sync.Mutex
	paused bool
}

// NewGameBoy returns a new GameBoy running rom from the power-up state.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	memBus := mmu.NewMMU(cart, nil)
	memBus.Log = g.Logger
	interrupt := interrupts.New(memBus)
	pad := joypad.New(interrupt)
	memBus.Input = pad
	if g.serialOut != nil {
		memBus.Link = serial.NewPrinter(g.serialOut)
	}

	var cpuOpts []cpu.Opt
	if g.historySize > 0 {
		cpuOpts = append(cpuOpts, cpu.WithHistory(g.historySize))
	}

	g.CPU = cpu.NewCPU(memBus, cpuOpts...)
	g.MMU = memBus
	g.Interrupts = interrupt
	g.Joypad = pad
	g.Timer = timer.New(memBus, interrupt)

	g.Infof("loaded %s", cart.Header())
	return g, nil
}

// Step executes a single instruction and then services interrupts,
// returning the cycles consumed by both. The timer runs for the
// duration of each.
func (g *GameBoy) Step() (int, error) {
	cycles, err := g.CPU.Step()
	if err != nil {
		g.Errorf("cpu fault: %v", err)
		return cycles, err
	}
	if !g.CPU.Stopped() {
		g.Timer.Tick(paced(cycles))
	}

	dispatch := g.Interrupts.Service(g.CPU)
	g.Timer.Tick(dispatch)

	cycles += dispatch
	g.cycles += uint64(cycles)

	return cycles, nil
}

// paced returns the cycles a step counts towards elapsed time.
func paced(cycles int) int {
	if cycles < minStepCycles {
		return minStepCycles
	}
	return cycles
}

// RunCycles steps the emulation until at least n clock cycles have
// elapsed, or the CPU faults.
func (g *GameBoy) RunCycles(n int) error {
	for elapsed := 0; elapsed < n; {
		cycles, err := g.Step()
		if err != nil {
			return err
		}
		elapsed += paced(cycles)
	}
	return nil
}

// Frame steps the emulation for a single frame, and notifies the
// observer, if any.
func (g *GameBoy) Frame() error {
	err := g.RunCycles(CyclesPerFrame)
	if g.observer != nil {
		g.observer(g.Snapshot())
	}
	return err
}

// Start runs frames at 60Hz until ctx is done or the CPU faults.
// Frames are skipped while the GameBoy is paused.
func (g *GameBoy) Start(ctx context.Context) error {
	g.Infof("starting emulation")
	defer g.Infof("stopped emulation")

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if g.Paused() {
				continue
			}
			if err := g.Frame(); err != nil {
				return err
			}
		}
	}
}

// Pause pauses the emulation started by Start.
func (g *GameBoy) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = true
}

// Resume resumes a paused emulation.
func (g *GameBoy) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
}

// Paused returns true if the emulation is paused.
func (g *GameBoy) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// Cycles returns the number of clock cycles executed.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}
