// Package serial provides devices for the other end of the serial
// port.
package serial

import (
	"io"

	"github.com/thelolagemann/lr35902/internal/mmu"
)

// Printer is a link cable that copies every byte shifted out of the
// port to a writer. Nothing drives the line from the other end, so
// every transfer shifts in 0xFF.
type Printer struct {
	w   io.Writer
	n   int
	err error
}

var _ mmu.Link = (*Printer)(nil)

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Transfer implements mmu.Link. After the first write error the
// output is dropped.
func (p *Printer) Transfer(out uint8) uint8 {
	if p.err == nil {
		_, p.err = p.w.Write([]byte{out})
	}
	p.n++
	return 0xFF
}

// Transferred returns the number of bytes shifted out.
func (p *Printer) Transferred() int {
	return p.n
}

// Err returns the first error returned by the writer.
func (p *Printer) Err() error {
	return p.err
}
