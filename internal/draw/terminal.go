package draw

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// ChunkWriter collects one frame of terminal output and hands it to the
// underlying writer in pieces of at most maxChunkSize bytes, so a frame sent
// over SSH leaves as a run of packet-sized writes. Cursor positions given to
// MoveCursor and WriteAt are 1-based canvas cells shifted by the offset.
type ChunkWriter struct {
	out     io.Writer
	frame   bytes.Buffer
	scratch [20]byte
	offCol  int
	offRow  int
	writes  int // Writes issued by the last Flush
}

var (
	_ io.Writer       = (*ChunkWriter)(nil)
	_ io.StringWriter = (*ChunkWriter)(nil)
)

// NewChunkWriter returns a ChunkWriter sending frames to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{out: w, offCol: offsetCol, offRow: offsetRow}
}

// SetOffset changes the cursor offset, normally after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor queues a cursor position sequence.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.scratch[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.scratch[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
}

// Write queues p. Canvas.Render and styled text reach the frame through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString queues s.
func (cw *ChunkWriter) WriteString(s string) (int, error) {
	return cw.frame.WriteString(s)
}

// WriteAt queues s at the given cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(s)
}

// Len returns the number of bytes waiting for Flush.
func (cw *ChunkWriter) Len() int {
	return cw.frame.Len()
}

// Flush sends the queued frame and empties it. A chunk never ends inside a
// UTF-8 sequence, so block glyphs are not split across writes.
func (cw *ChunkWriter) Flush() error {
	cw.writes = 0
	defer cw.frame.Reset()

	data := cw.frame.Bytes()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if n < len(data) {
			for n > 1 && !utf8.RuneStart(data[n]) {
				n--
			}
		}
		written, err := cw.out.Write(data[:n])
		cw.writes++
		if err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		if written < n {
			return fmt.Errorf("write frame: %w", io.ErrShortWrite)
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc asks the terminal behind os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TermSize calls sizeFunc and rejects sizes that cannot hold a canvas.
func TermSize(sizeFunc TermSizeFunc) (width, height int, err error) {
	width, height, err = sizeFunc()
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("terminal size %dx%d: no drawable area", width, height)
	}
	return width, height, nil
}
