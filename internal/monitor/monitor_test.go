package monitor

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/lr35902/internal/cpu"
	"github.com/thelolagemann/lr35902/internal/gameboy"
)

// fields decodes a snapshot message into its numeric fields.
func fields(t *testing.T, data []byte) (map[string]uint64, []uint16) {
	t.Helper()
	values := map[string]uint64{}
	var calls []uint16

	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch d.Next() {
		case jx.Bool:
			v, err := d.Bool()
			if v {
				values[key] = 1
			} else {
				values[key] = 0
			}
			return err
		case jx.Array:
			return d.Arr(func(d *jx.Decoder) error {
				v, err := d.UInt16()
				calls = append(calls, v)
				return err
			})
		default:
			v, err := d.UInt64()
			values[key] = v
			return err
		}
	})
	if err != nil {
		t.Fatalf("invalid snapshot %s: %v", data, err)
	}
	return values, calls
}

func testSnapshot() gameboy.Snapshot {
	return gameboy.Snapshot{
		Snapshot: cpu.Snapshot{
			PC: 0x0150, SP: 0xFFFC,
			A: 0x01, F: 0xB0, B: 0x02, C: 0x03,
			D: 0x04, E: 0x05, H: 0x06, L: 0x07,
			IME:    true,
			Halted: false,
			Calls:  []uint16{0x0200, 0x0100},
		},
		IE:     0x1F,
		IF:     0x01,
		Bank:   3,
		Cycles: 70224,
	}
}

func TestEncode(t *testing.T) {
	values, calls := fields(t, Encode(testSnapshot()))

	want := map[string]uint64{
		"pc": 0x0150, "sp": 0xFFFC,
		"a": 0x01, "f": 0xB0, "b": 0x02, "c": 0x03,
		"d": 0x04, "e": 0x05, "h": 0x06, "l": 0x07,
		"ime": 1, "halted": 0,
		"ie": 0x1F, "if": 0x01,
		"bank": 3, "cycles": 70224,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint16{0x0200, 0x0100}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_NoCalls(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Calls = nil

	if _, calls := fields(t, Encode(snapshot)); len(calls) != 0 {
		t.Errorf("Expected no calls, got %v", calls)
	}
}

func TestServer_Publish(t *testing.T) {
	s := New(time.Millisecond, nil)

	first, second := testSnapshot(), testSnapshot()
	second.PC = 0x0200
	s.Publish(first)
	s.Publish(second) // replaces the unread snapshot

	got := <-s.snapshots
	if got.PC != 0x0200 {
		t.Errorf("Expected the newest snapshot, got PC 0x%04X", got.PC)
	}
	select {
	case <-s.snapshots:
		t.Error("Expected a single pending snapshot")
	default:
	}
}

func TestServer_Websocket(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	s := New(10*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, ln) }()

	s.Publish(testSnapshot())

	ws, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	if err != nil {
		cancel()
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		cancel()
		t.Fatalf("read: %v", err)
	}
	values, _ := fields(t, data)
	if values["pc"] != 0x0150 || values["cycles"] != 70224 {
		t.Errorf("unexpected snapshot %s", data)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
