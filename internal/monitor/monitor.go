// Package monitor streams emulator snapshots to websocket clients. The
// monitor never touches the emulator: snapshots are handed over by the
// emulation goroutine through Publish.
package monitor

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/thelolagemann/lr35902/internal/gameboy"
	"github.com/thelolagemann/lr35902/pkg/log"
)

const writeWait = time.Second

// Server serves the latest snapshot on /ws, once per interval.
type Server struct {
	interval time.Duration
	log      log.Logger

	snapshots chan gameboy.Snapshot
	quit      chan struct{}

	mu     sync.Mutex
	latest []byte

	upgrader websocket.Upgrader
}

// New returns a Server pushing to clients every interval.
func New(interval time.Duration, l log.Logger) *Server {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Server{
		interval:  interval,
		log:       l,
		snapshots: make(chan gameboy.Snapshot, 1),
		quit:      make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Publish hands a snapshot to the server without blocking. A snapshot
// not yet consumed is replaced. It must be called from a single
// goroutine.
func (s *Server) Publish(snapshot gameboy.Snapshot) {
	select {
	case s.snapshots <- snapshot:
		return
	default:
	}
	select {
	case <-s.snapshots:
	default:
	}
	select {
	case s.snapshots <- snapshot:
	default:
	}
}

// Latest returns the last encoded snapshot, or nil.
func (s *Server) Latest() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

// Run serves clients on ln until ctx is done.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Infof("monitor: listening on %s", ln.Addr())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		s.consume(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		close(s.quit)
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// consume encodes published snapshots until ctx is done.
func (s *Server) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-s.snapshots:
			data := Encode(snapshot)
			s.mu.Lock()
			s.latest = data
			s.mu.Unlock()
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("monitor: websocket handshake: %v", err)
		return
	}
	defer ws.Close()
	s.log.Debugf("monitor: client %s connected", r.RemoteAddr)

	// clients only listen, reading detects the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			s.log.Debugf("monitor: client %s disconnected", r.RemoteAddr)
			return
		case <-s.quit:
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		case <-ticker.C:
			data := s.Latest()
			if data == nil {
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				s.log.Debugf("monitor: write to %s: %v", r.RemoteAddr, err)
				return
			}
		}
	}
}

// Encode returns the JSON form of a snapshot.
func Encode(snapshot gameboy.Snapshot) []byte {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(snapshot.PC)
	e.FieldStart("sp")
	e.UInt16(snapshot.SP)
	for _, r := range []struct {
		name  string
		value uint8
	}{
		{"a", snapshot.A}, {"f", snapshot.F},
		{"b", snapshot.B}, {"c", snapshot.C},
		{"d", snapshot.D}, {"e", snapshot.E},
		{"h", snapshot.H}, {"l", snapshot.L},
	} {
		e.FieldStart(r.name)
		e.UInt8(r.value)
	}
	e.FieldStart("ime")
	e.Bool(snapshot.IME)
	e.FieldStart("halted")
	e.Bool(snapshot.Halted)
	e.FieldStart("ie")
	e.UInt8(snapshot.IE)
	e.FieldStart("if")
	e.UInt8(snapshot.IF)
	e.FieldStart("bank")
	e.Int(snapshot.Bank)
	e.FieldStart("cycles")
	e.UInt64(snapshot.Cycles)
	e.FieldStart("calls")
	e.ArrStart()
	for _, call := range snapshot.Calls {
		e.UInt16(call)
	}
	e.ArrEnd()
	e.ObjEnd()

	return append([]byte(nil), e.Bytes()...)
}
