package draw

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestCanvas() *Canvas {
	// One logical unit per ten pixels' worth: 10 columns, 10 sub-pixel rows.
	return NewScaledCanvas(10, 5, 100, 100)
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(Point{X: 41, Y: 41}, Point{X: 42, Y: 42}, 10)
	if got := c.At(4, 4); got != 10 {
		t.Fatalf("At(4,4) = %d, want 10", got)
	}

	c.Clear()
	c.FillRect(Point{X: 0, Y: 0}, Point{X: 30, Y: 20}, 9)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := Empty
			if x < 3 && y < 2 {
				want = 9
			}
			if got := c.At(x, y); got != want {
				t.Fatalf("At(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(Point{X: -500, Y: -500}, Point{X: 5, Y: 5}, 9)
	if c.At(0, 0) != 9 {
		t.Fatal("visible corner of an off-canvas rectangle was not drawn")
	}
}

func TestFillEllipseMarksCentre(t *testing.T) {
	c := newTestCanvas()
	c.FillEllipse(Point{X: 50, Y: 50}, Point{X: 52, Y: 52}, 9)
	if c.At(5, 5) != 9 {
		t.Fatal("tiny ellipse left no pixel at its centre")
	}

	c.Clear()
	c.FillEllipse(Point{X: 0, Y: 0}, Point{X: 100, Y: 100}, 11)
	if c.At(5, 5) != 11 {
		t.Fatal("large ellipse centre not filled")
	}
	if c.At(0, 0) != Empty || c.At(9, 9) != Empty {
		t.Fatal("ellipse filled its bounding box corners")
	}
}

func TestFillPolygon(t *testing.T) {
	c := newTestCanvas()
	c.FillPolygon([]Point{{X: 50, Y: 10}, {X: 10, Y: 90}, {X: 90, Y: 90}}, 14)
	if c.At(5, 6) != 14 {
		t.Fatal("triangle interior not filled")
	}
	if c.At(0, 0) != Empty || c.At(9, 0) != Empty {
		t.Fatal("triangle filled outside its edges")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer

	c.Render(&buf)
	if buf.Len() == 0 {
		t.Fatal("first render wrote nothing")
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	c.FillRect(Point{X: 0, Y: 0}, Point{X: 10, Y: 10}, 9)
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "\033[1;1H") || !strings.Contains(out, FgColor(9)+string(BlockUpperHalf)) {
		t.Fatalf("render of one top pixel = %q", out)
	}

	buf.Reset()
	c.MarkTextDirty(1, 1, 1)
	c.Render(&buf)
	if !strings.Contains(buf.String(), string(BlockUpperHalf)) {
		t.Fatal("dirty cell was not repainted")
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(3, 2)
	c.FillRect(Point{X: 0, Y: 0}, Point{X: 10, Y: 20}, 9)
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[3;4H") {
		t.Fatalf("offset render = %q, want cursor at row 3 col 4", buf.String())
	}
}

func TestCellGlyph(t *testing.T) {
	cases := []struct {
		top, bottom uint8
		fg, bg      int
		ch          rune
	}{
		{Empty, Empty, -1, -1, BlockEmpty},
		{9, Empty, 9, -1, BlockUpperHalf},
		{Empty, 9, 9, -1, BlockLowerHalf},
		{9, 9, 9, -1, BlockFull},
		{9, 10, 9, 10, BlockUpperHalf},
	}
	for _, tc := range cases {
		fg, bg, ch := cellGlyph(tc.top, tc.bottom)
		if fg != tc.fg || bg != tc.bg || ch != tc.ch {
			t.Fatalf("cellGlyph(%d,%d) = %d,%d,%q, want %d,%d,%q", tc.top, tc.bottom, fg, bg, ch, tc.fg, tc.bg, tc.ch)
		}
	}
}

func TestRenderBorderNeedsOffset(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if buf.Len() != 0 {
		t.Fatal("border drawn without room for it")
	}
	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	if !strings.Contains(buf.String(), "┌") || !strings.Contains(buf.String(), "┘") {
		t.Fatalf("border = %q", buf.String())
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := newTestCanvas()
	if col, row := c.LogicalToTerminal(55, 55); col != 6 || row != 3 {
		t.Fatalf("LogicalToTerminal(55,55) = %d,%d, want 6,3", col, row)
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[2;3Hhi" {
		t.Fatalf("flushed %q", got)
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset after Flush")
	}
}

// chunkRecorder keeps every Write as a separate chunk.
type chunkRecorder struct {
	chunks [][]byte
	short  bool
}

func (r *chunkRecorder) Write(p []byte) (int, error) {
	r.chunks = append(r.chunks, bytes.Clone(p))
	if r.short {
		return len(p) - 1, nil
	}
	return len(p), nil
}

func TestChunkWriterSplitsOnRuneBoundaries(t *testing.T) {
	var rec chunkRecorder
	cw := NewChunkWriter(&rec, 0, 0)
	// One ASCII byte shifts the three-byte glyphs off the chunk boundary.
	frame := "x" + strings.Repeat(string(BlockFull), maxChunkSize)
	cw.WriteString(frame)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	var joined []byte
	for i, c := range rec.chunks {
		if len(c) > maxChunkSize {
			t.Fatalf("chunk %d is %d bytes, limit %d", i, len(c), maxChunkSize)
		}
		if !utf8.Valid(c) {
			t.Fatalf("chunk %d splits a rune", i)
		}
		joined = append(joined, c...)
	}
	if string(joined) != frame {
		t.Fatal("chunks do not reassemble the frame")
	}
	if len(rec.chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(rec.chunks))
	}
}

func TestChunkWriterReportsShortWrite(t *testing.T) {
	rec := chunkRecorder{short: true}
	cw := NewChunkWriter(&rec, 0, 0)
	cw.WriteString("frame")
	if err := cw.Flush(); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("Flush error = %v, want io.ErrShortWrite", err)
	}
	if cw.Len() != 0 {
		t.Fatal("frame kept after failed Flush")
	}
}

func TestTermSize(t *testing.T) {
	errNoTTY := errors.New("not a tty")
	tests := []struct {
		name    string
		size    TermSizeFunc
		w, h    int
		wantErr bool
	}{
		{"ok", func() (int, int, error) { return 80, 24, nil }, 80, 24, false},
		{"error", func() (int, int, error) { return 0, 0, errNoTTY }, 0, 0, true},
		{"empty", func() (int, int, error) { return 0, 24, nil }, 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h, err := TermSize(tc.size)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if w != tc.w || h != tc.h {
				t.Fatalf("got %dx%d, want %dx%d", w, h, tc.w, tc.h)
			}
		})
	}
	if _, _, err := TermSize(tests[1].size); !errors.Is(err, errNoTTY) {
		t.Fatalf("error not wrapped: %v", err)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestRenderReportsWriteErrors(t *testing.T) {
	errClosed := errors.New("channel closed")

	c := newTestCanvas()
	c.FillRect(Point{X: 0, Y: 0}, Point{X: 100, Y: 100}, 9)
	if err := c.Render(failWriter{errClosed}); !errors.Is(err, errClosed) {
		t.Fatalf("Render error = %v, want %v", err, errClosed)
	}

	c.SetOffset(2, 2)
	if err := c.RenderBorder(failWriter{errClosed}); !errors.Is(err, errClosed) {
		t.Fatalf("RenderBorder error = %v, want %v", err, errClosed)
	}
}
