package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/thelolagemann/lr35902/internal/cpu"
	"github.com/thelolagemann/lr35902/internal/gameboy"
	"github.com/thelolagemann/lr35902/internal/monitor"
	"github.com/thelolagemann/lr35902/pkg/log"
	"github.com/thelolagemann/lr35902/pkg/utils"
)

type RunCmd struct {
	RomPath string `arg:"" name:"rom" help:"ROM image, optionally gzip, zip or 7z compressed." type:"existingfile"`

	Frames   int    `help:"${frames_help}" default:"0"`
	StateIn  string `name:"state-in" help:"Load a save state before running." type:"existingfile"`
	StateOut string `name:"state-out" help:"Write a save state after running." type:"path"`
	Monitor  bool   `help:"Serve snapshots over websocket on the configured address."`
	Serial   bool   `help:"Print bytes sent over the serial port."`
}

func (r *RunCmd) Run(g *globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rom, err := utils.LoadFile(r.RomPath)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(log.WithField(g.log, "rom", r.RomPath)),
		gameboy.WithCallHistory(g.cfg.Emulation.HistorySize()),
	}
	if r.Serial {
		opts = append(opts, gameboy.WithSerial(g.out))
	}

	var mon *monitor.Server
	if r.Monitor {
		mon = monitor.New(time.Duration(g.cfg.Monitor.IntervalMS)*time.Millisecond, g.log)
		opts = append(opts, gameboy.WithObserver(mon.Publish))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}
	if r.StateIn != "" {
		if err := loadState(gb, r.StateIn); err != nil {
			return err
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if mon != nil {
		ln, err := net.Listen("tcp", g.cfg.Monitor.Addr)
		if err != nil {
			return errors.Wrap(err, "monitor")
		}
		eg.Go(func() error {
			return mon.Run(ctx, ln)
		})
	}
	eg.Go(func() error {
		defer cancel()
		return r.emulate(ctx, gb)
	})

	err = eg.Wait()
	report(g, gb, err)
	if r.StateOut != "" {
		if serr := saveState(gb, r.StateOut); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func (r *RunCmd) emulate(ctx context.Context, gb *gameboy.GameBoy) error {
	if r.Frames <= 0 {
		err := gb.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	for i := 0; i < r.Frames; i++ {
		if ctx.Err() != nil {
			return nil
		}
		if err := gb.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// report prints the final state, and the fault if any.
func report(g *globals, gb *gameboy.GameBoy, err error) {
	s := gb.Snapshot()
	fmt.Fprintf(g.out, "PC=%04X SP=%04X AF=%02X%02X BC=%02X%02X DE=%02X%02X HL=%02X%02X IME=%t cycles=%d\n",
		s.PC, s.SP, s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.IME, s.Cycles)

	var fault *cpu.Fault
	if errors.As(err, &fault) {
		text, _ := cpu.Disassemble(gb.MMU, fault.PC)
		fmt.Fprintf(g.out, "fault: %v\n  %04X  %s\n", fault.Err, fault.PC, text)
		for _, call := range fault.Calls {
			text, _ := cpu.Disassemble(gb.MMU, call)
			fmt.Fprintf(g.out, "  called from %04X  %s\n", call, text)
		}
	}
}

func loadState(gb *gameboy.GameBoy, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open state")
	}
	defer f.Close()
	return gb.LoadState(f)
}

func saveState(gb *gameboy.GameBoy, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create state")
	}
	if err := gb.SaveState(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type BatchCmd struct {
	RomPaths []string `arg:"" name:"rom" help:"ROM images."`

	Frames int `help:"Number of frames to run each ROM for." default:"60"`
	Jobs   int `help:"Maximum number of concurrent instances, 0 for one per CPU." default:"0"`
}

func (b *BatchCmd) Run(g *globals) error {
	results := make([]string, len(b.RomPaths))

	var eg errgroup.Group
	if b.Jobs > 0 {
		eg.SetLimit(b.Jobs)
	} else {
		eg.SetLimit(runtime.NumCPU())
	}

	for i, path := range b.RomPaths {
		i, path := i, path
		eg.Go(func() error {
			results[i] = b.runOne(g, path)
			return nil
		})
	}
	_ = eg.Wait()

	for i, result := range results {
		fmt.Fprintf(g.out, "%s: %s\n", b.RomPaths[i], result)
	}
	return nil
}

// runOne runs a single ROM in its own instance and describes the outcome.
func (b *BatchCmd) runOne(g *globals, path string) string {
	rom, err := utils.LoadFile(path)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	gb, err := gameboy.NewGameBoy(rom,
		gameboy.WithLogger(log.WithField(g.log, "rom", path)),
		gameboy.WithCallHistory(g.cfg.Emulation.HistorySize()),
	)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	for i := 0; i < b.Frames; i++ {
		if err := gb.Frame(); err != nil {
			return fmt.Sprintf("fault after %d cycles: %v", gb.Cycles(), err)
		}
	}
	return fmt.Sprintf("ok (%d cycles, PC=%04X)", gb.Cycles(), gb.CPU.PC)
}
