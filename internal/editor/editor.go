package editor

import (
	"fmt"
	"time"

	"github.com/RYSF13/quecto/internal/config"
	"github.com/RYSF13/quecto/internal/logger"
	"github.com/RYSF13/quecto/internal/terminal"
)

type Mode int

const (
	ModeEdit Mode = iota
	ModeCommand
)

const maxHistory = 100

// Editor owns the buffer plus everything the loop needs between
// keystrokes: geometry, mode, the command line, the transient status
// message and the guarded-quit latch.
type Editor struct {
	*Buffer
	cfg config.Config

	screenRows int // total terminal rows
	screenCols int
	textRows   int // rows available for text (screen minus status and message)
	rx         int // cursor display column, recomputed by Scroll

	mode        Mode
	cmdline     []byte
	status      string
	statusTime  time.Time
	quitPending bool

	history []string
	histIdx int
}

func New(cfg config.Config) *Editor {
	return &Editor{Buffer: NewBuffer(), cfg: cfg}
}

// SetSize records the terminal geometry. Two rows are reserved below
// the text area: the status bar and the message/prompt line.
func (e *Editor) SetSize(rows, cols int) {
	e.screenRows = rows
	e.screenCols = cols
	e.textRows = rows - 2
	if e.textRows < 0 {
		e.textRows = 0
	}
}

// Open loads path into the buffer.
func (e *Editor) Open(path string) error {
	return e.Load(path)
}

// SetStatus sets the transient message shown below the status bar.
func (e *Editor) SetStatus(format string, args ...interface{}) {
	e.status = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// ScrollRow returns the current vertical viewport offset.
func (e *Editor) ScrollRow() int { return e.rowOff }

// RestorePosition places the cursor and viewport from a saved session,
// clamped to the loaded buffer.
func (e *Editor) RestorePosition(row, col, scroll int) {
	e.cy, e.cx = row, col
	e.clampCursor()
	if scroll >= 0 && scroll <= e.cy {
		e.rowOff = scroll
	}
}

// History returns executed prompt commands, oldest first.
func (e *Editor) History() []string { return e.history }

func (e *Editor) SetHistory(history []string) {
	e.history = append(e.history[:0], history...)
}

// HandleKey dispatches one key and reports whether the editor should
// quit. Frames and mutations strictly alternate: the caller renders
// exactly once after every dispatch.
func (e *Editor) HandleKey(k terminal.Key) bool {
	if e.mode == ModeCommand {
		return e.handleCommandKey(k)
	}
	if k != terminal.Ctrl('q') {
		e.quitPending = false
	}

	switch k {
	case terminal.Ctrl('q'):
		if e.Dirty() && !e.quitPending {
			e.quitPending = true
			e.SetStatus("Unsaved changes! Press Ctrl-Q again to quit.")
			return false
		}
		return true

	case terminal.Ctrl('s'):
		e.saveFile()

	case terminal.Ctrl('x'):
		e.mode = ModeCommand
		e.cmdline = e.cmdline[:0]
		e.histIdx = len(e.history)

	case terminal.KeyEnter:
		e.InsertNewline()

	case terminal.KeyBackspace, terminal.Ctrl('h'):
		e.DeleteBackward()

	case terminal.KeyDelete:
		e.DeleteForward()

	case terminal.KeyHome:
		e.cx = 0

	case terminal.KeyEnd:
		if e.cy < e.RowCount() {
			e.cx = len(e.rows[e.cy])
		}

	case terminal.KeyArrowUp, terminal.KeyArrowDown, terminal.KeyArrowLeft, terminal.KeyArrowRight:
		e.moveCursor(k)

	case terminal.KeyPageUp, terminal.KeyPageDown:
		dir := terminal.KeyArrowUp
		if k == terminal.KeyPageDown {
			dir = terminal.KeyArrowDown
		}
		for i := 0; i < e.textRows; i++ {
			e.moveCursor(dir)
		}

	case terminal.KeyEscape:
		// Swallowed: a lone ESC is not an edit.

	default:
		if k.IsLiteral() {
			b := k.Byte()
			if b == '\t' || (b >= 32 && b != 127) {
				e.InsertChar(b)
			}
		}
	}

	e.clampCursor()
	return false
}

func (e *Editor) moveCursor(k terminal.Key) {
	switch k {
	case terminal.KeyArrowLeft:
		if e.cx > 0 {
			e.cx = prevBoundary(e.rows[e.cy], e.cx)
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.rows[e.cy])
		}
	case terminal.KeyArrowRight:
		if e.cy < e.RowCount() && e.cx < len(e.rows[e.cy]) {
			e.cx = nextBoundary(e.rows[e.cy], e.cx)
		} else if e.cy < e.RowCount()-1 {
			e.cy++
			e.cx = 0
		}
	case terminal.KeyArrowUp:
		if e.cy > 0 {
			e.cy--
		}
	case terminal.KeyArrowDown:
		if e.cy < e.RowCount()-1 {
			e.cy++
		}
	}
	e.clampCursor()
}

// clampCursor keeps the cursor inside the buffer invariants: row index
// in [0, row count], byte offset in [0, row length] and on a codepoint
// boundary.
func (e *Editor) clampCursor() {
	if e.cy < 0 {
		e.cy = 0
	}
	if e.cy > e.RowCount() {
		e.cy = e.RowCount()
	}
	rowlen := 0
	if e.cy < e.RowCount() {
		rowlen = len(e.rows[e.cy])
	}
	if e.cx > rowlen {
		e.cx = rowlen
	}
	if e.cx < 0 {
		e.cx = 0
	}
	if e.cy < e.RowCount() {
		e.cx = snapBoundary(e.rows[e.cy], e.cx)
	}
}

// saveFile writes the buffer and surfaces the outcome in the status
// line; a failed save keeps the buffer dirty.
func (e *Editor) saveFile() {
	if e.Filename() == "" {
		e.SetStatus("no file name")
		return
	}
	if err := e.Save(); err != nil {
		logger.Error("save failed", "path", e.Filename(), "err", err)
		e.SetStatus("Error: %v", err)
		return
	}
	logger.Info("saved", "path", e.Filename())
	e.SetStatus("Saved to %s", e.Filename())
}

func (e *Editor) handleCommandKey(k terminal.Key) bool {
	switch k {
	case terminal.KeyEnter:
		cmd := string(e.cmdline)
		e.mode = ModeEdit
		e.cmdline = e.cmdline[:0]
		e.addHistory(cmd)
		return e.execCommand(cmd)

	case terminal.KeyEscape:
		e.mode = ModeEdit
		e.cmdline = e.cmdline[:0]
		e.status = ""

	case terminal.KeyBackspace, terminal.Ctrl('h'):
		if n := len(e.cmdline); n > 0 {
			e.cmdline = e.cmdline[:n-1]
		}

	case terminal.KeyArrowUp:
		if e.histIdx > 0 {
			e.histIdx--
			e.cmdline = append(e.cmdline[:0], e.history[e.histIdx]...)
		}

	case terminal.KeyArrowDown:
		if e.histIdx < len(e.history) {
			e.histIdx++
			e.cmdline = e.cmdline[:0]
			if e.histIdx < len(e.history) {
				e.cmdline = append(e.cmdline, e.history[e.histIdx]...)
			}
		}

	default:
		if k.IsLiteral() {
			b := k.Byte()
			if b >= 32 && b != 127 {
				e.cmdline = append(e.cmdline, b)
			}
		}
	}
	return false
}

func (e *Editor) addHistory(cmd string) {
	if cmd == "" {
		return
	}
	if n := len(e.history); n > 0 && e.history[n-1] == cmd {
		return
	}
	e.history = append(e.history, cmd)
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}
}
