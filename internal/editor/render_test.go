package editor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/RYSF13/quecto/internal/terminal"
)

func frameString(e *Editor) string {
	e.Scroll()
	return string(e.RenderFrame())
}

func TestFrameEnvelope(t *testing.T) {
	e := newTestEditor("hello")
	frame := frameString(e)
	if !strings.HasPrefix(frame, escHideCursor+escCursorHome) {
		t.Fatalf("frame does not start by hiding and homing the cursor: %q", frame[:12])
	}
	if !strings.HasSuffix(frame, escShowCursor) {
		t.Fatalf("frame does not end by showing the cursor")
	}
}

func TestTextRowsHaveLeftMargin(t *testing.T) {
	e := newTestEditor("hello")
	frame := frameString(e)
	if !strings.Contains(frame, " hello"+escClearLine) {
		t.Fatalf("row not rendered with one-column margin: %q", frame)
	}
}

func TestTildeFillBeyondText(t *testing.T) {
	e := newTestEditor("only")
	e.SetSize(10, 40)
	frame := frameString(e)
	// 8 text rows, 1 holds content, 7 placeholders without margin.
	if got := strings.Count(frame, "~"+escClearLine); got != 7 {
		t.Fatalf("tilde rows = %d, want 7", got)
	}
}

func TestControlByteRendersInverseGlyph(t *testing.T) {
	e := newTestEditor("a\x01b")
	frame := frameString(e)
	if !strings.Contains(frame, escInverse+"A"+escAttrsOff) {
		t.Fatalf("control byte 0x01 not rendered as inverse 'A': %q", frame)
	}
	e = newTestEditor("a\x1fb")
	frame = frameString(e)
	if !strings.Contains(frame, escInverse+"?"+escAttrsOff) {
		t.Fatalf("control byte 0x1f not rendered as inverse '?': %q", frame)
	}
}

func TestTabExpandsToStop(t *testing.T) {
	e := newTestEditor("a\tb")
	frame := frameString(e)
	if !strings.Contains(frame, " a   b") {
		t.Fatalf("tab not expanded to stop of 4: %q", frame)
	}
}

func TestStatusLineContents(t *testing.T) {
	e := newTestEditor("hello")
	e.filename = "file.txt"
	e.cx = 2
	frame := frameString(e)
	if !strings.Contains(frame, "file.txt") {
		t.Fatalf("status missing filename: %q", frame)
	}
	if !strings.Contains(frame, "1,3") {
		t.Fatalf("status missing 1-based cursor position: %q", frame)
	}
	if strings.Contains(frame, "file.txt*") {
		t.Fatalf("clean buffer shows dirty marker")
	}
	e.InsertByte(0, 0, 'x')
	frame = frameString(e)
	if !strings.Contains(frame, "file.txt*") {
		t.Fatalf("dirty buffer missing marker: %q", frame)
	}
}

func TestStatusLineNoName(t *testing.T) {
	e := newTestEditor()
	if frame := frameString(e); !strings.Contains(frame, "[No Name]") {
		t.Fatalf("unbound buffer missing [No Name]: %q", frame)
	}
}

func TestStatusFilenameTruncated(t *testing.T) {
	e := newTestEditor("x")
	e.filename = strings.Repeat("n", 40)
	frame := frameString(e)
	if strings.Contains(frame, strings.Repeat("n", 21)) {
		t.Fatalf("filename not truncated to 20 bytes")
	}
	if !strings.Contains(frame, strings.Repeat("n", 20)) {
		t.Fatalf("truncated filename missing")
	}
}

func TestStatusPositionUsesDisplayColumn(t *testing.T) {
	e := newTestEditor("\tx")
	e.cx = 1 // one byte in, four display columns in
	frame := frameString(e)
	if !strings.Contains(frame, "1,5") {
		t.Fatalf("status column not display-based: %q", frame)
	}
}

func TestMessageBarShowsStatus(t *testing.T) {
	e := newTestEditor("x")
	e.SetStatus("hello there")
	frame := frameString(e)
	if !strings.Contains(frame, "hello there") {
		t.Fatalf("message bar missing status: %q", frame)
	}
}

func TestMessageExpiresAfterTimeout(t *testing.T) {
	e := newTestEditor("x")
	e.SetStatus("stale")
	e.statusTime = time.Now().Add(-10 * time.Second)
	frame := frameString(e)
	if strings.Contains(frame, "stale") {
		t.Fatalf("expired message still rendered")
	}
}

func TestStickyMessageWithZeroTimeout(t *testing.T) {
	e := newTestEditor("x")
	e.cfg.Editor.MessageTimeout = 0
	e.SetStatus("sticky")
	e.statusTime = time.Now().Add(-time.Hour)
	frame := frameString(e)
	if !strings.Contains(frame, "sticky") {
		t.Fatalf("sticky message dropped")
	}
}

func TestCommandPromptRendered(t *testing.T) {
	e := newTestEditor("x")
	e.HandleKey(terminal.Ctrl('x'))
	typeString(e, "wq")
	frame := frameString(e)
	if !strings.Contains(frame, "> wq") {
		t.Fatalf("prompt line missing: %q", frame)
	}
	// Hardware cursor parked at the end of the prompt on the last row.
	if !strings.Contains(frame, fmt.Sprintf("\x1b[%d;%dH", e.screenRows, 5)) {
		t.Fatalf("cursor not on prompt line: %q", frame)
	}
}

func TestCursorPositionSequence(t *testing.T) {
	e := newTestEditor("hello")
	e.cx = 3
	frame := frameString(e)
	// Row 1, display column 3 plus margin and 1-based conversion.
	if !strings.Contains(frame, "\x1b[1;5H") {
		t.Fatalf("cursor sequence missing: %q", frame)
	}
}

func TestVerticalScrollSnap(t *testing.T) {
	e := newTestEditor("a", "b", "c", "d", "e", "f")
	e.SetSize(5, 40) // 3 text rows
	e.cy = 5
	e.Scroll()
	if e.rowOff != 3 {
		t.Fatalf("rowOff = %d, want 3", e.rowOff)
	}
	e.cy = 1
	e.Scroll()
	if e.rowOff != 1 {
		t.Fatalf("rowOff = %d, want 1", e.rowOff)
	}
}

func TestHorizontalScrollClamp(t *testing.T) {
	e := newTestEditor(strings.Repeat("x", 100))
	e.SetSize(24, 10) // 9 usable text columns
	e.cx = 100
	e.Scroll()
	if e.rx != 100 {
		t.Fatalf("rx = %d, want 100", e.rx)
	}
	if e.colOff != 92 {
		t.Fatalf("colOff = %d, want 92", e.colOff)
	}
	e.cx = 0
	e.Scroll()
	if e.colOff != 0 {
		t.Fatalf("colOff = %d, want 0", e.colOff)
	}
}

func TestScrolledFrameShowsWindow(t *testing.T) {
	e := newTestEditor("first", "second", "third", "fourth", "fifth")
	e.SetSize(4, 40) // 2 text rows
	e.cy = 4
	frame := frameString(e)
	if strings.Contains(frame, "first") {
		t.Fatalf("off-screen row rendered: %q", frame)
	}
	if !strings.Contains(frame, "fifth") {
		t.Fatalf("cursor row not visible: %q", frame)
	}
}

func TestSingleWriteFrame(t *testing.T) {
	// The frame is one contiguous buffer; rendering twice from the
	// same state yields identical bytes.
	e := newTestEditor("stable")
	e.Scroll()
	a := e.RenderFrame()
	b := e.RenderFrame()
	if !bytes.Equal(a, b) {
		t.Fatalf("render not deterministic")
	}
}

func TestWideGlyphNotSplitAtRightEdge(t *testing.T) {
	// 世 is two columns; with the cursor at 0 and a narrow screen the
	// trailing wide glyph must be dropped whole, never half-emitted.
	e := newTestEditor("abc\xe4\xb8\x96")
	e.SetSize(24, 5) // 4 usable columns
	frame := frameString(e)
	if strings.Contains(frame, "\xe4") {
		t.Fatalf("wide glyph partially rendered: %q", frame)
	}
}
