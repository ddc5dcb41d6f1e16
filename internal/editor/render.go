package editor

import (
	"bytes"
	"fmt"
	"time"
)

const (
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	escCursorHome = "\x1b[H"
	escResetAttrs = "\x1b[0m"
	escClearLine  = "\x1b[K"
	escInverse    = "\x1b[7m"
	escAttrsOff   = "\x1b[m"
)

// Scroll recomputes the cursor display column and snaps the viewport
// offsets so the cursor stays inside the visible window.
func (e *Editor) Scroll() {
	e.rx = 0
	if e.cy < e.RowCount() {
		e.rx = displayCol(e.rows[e.cy], e.cx, e.cfg.Editor.TabWidth)
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.textRows > 0 && e.cy >= e.rowOff+e.textRows {
		e.rowOff = e.cy - e.textRows + 1
	}

	width := e.screenCols - 1 // one-column left margin
	if width < 1 {
		width = 1
	}
	if e.rx < e.colOff {
		e.colOff = e.rx
	}
	if e.rx >= e.colOff+width {
		e.colOff = e.rx - width + 1
	}
}

// RenderFrame composes one full screen update in memory. The caller
// flushes it with a single write so no partial frame is ever visible.
func (e *Editor) RenderFrame() []byte {
	var ab bytes.Buffer
	ab.WriteString(escHideCursor)
	ab.WriteString(escCursorHome)
	ab.WriteString(escResetAttrs)

	e.drawRows(&ab)
	e.drawStatusBar(&ab)
	e.drawMessageBar(&ab)

	if e.mode == ModeCommand {
		col := len(e.cmdline) + 3
		if col > e.screenCols {
			col = e.screenCols
		}
		fmt.Fprintf(&ab, "\x1b[%d;%dH", e.screenRows, col)
	} else {
		fmt.Fprintf(&ab, "\x1b[%d;%dH", e.cy-e.rowOff+1, e.rx-e.colOff+2)
	}
	ab.WriteString(escShowCursor)
	return ab.Bytes()
}

func (e *Editor) drawRows(ab *bytes.Buffer) {
	for y := 0; y < e.textRows; y++ {
		filerow := y + e.rowOff
		if filerow < e.RowCount() {
			ab.WriteByte(' ')
			e.drawRow(ab, e.rows[filerow])
		} else {
			ab.WriteByte('~')
		}
		ab.WriteString(escClearLine)
		ab.WriteString("\r\n")
	}
}

// drawRow emits the visible display-column window of one row. Tabs
// expand to the next stop, control bytes render as inverse caret
// glyphs, multi-byte sequences are emitted whole or not at all.
func (e *Editor) drawRow(ab *bytes.Buffer, row []byte) {
	tabStop := e.cfg.Editor.TabWidth
	width := e.screenCols - 1
	if width < 0 {
		width = 0
	}
	left, right := e.colOff, e.colOff+width

	col := 0
	for i := 0; i < len(row) && col < right; {
		b := row[i]
		if b == '\t' {
			next := col + tabStop - col%tabStop
			for ; col < next; col++ {
				if col >= left && col < right {
					ab.WriteByte(' ')
				}
			}
			i++
			continue
		}
		if b < 32 || b == 127 {
			sym := byte('?')
			if b <= 26 {
				sym = '@' + b
			}
			if col >= left && col < right {
				ab.WriteString(escInverse)
				ab.WriteByte(sym)
				ab.WriteString(escAttrsOff)
			}
			col++
			i++
			continue
		}
		size, w := seqWidth(b)
		if i+size > len(row) {
			size = len(row) - i
		}
		if col >= left && col+w <= right {
			ab.Write(row[i : i+size])
		}
		col += w
		i += size
	}
}

func (e *Editor) drawStatusBar(ab *bytes.Buffer) {
	ab.WriteString(escInverse)

	name := e.Filename()
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	status := name
	if e.Dirty() {
		status += "*"
	}
	rstatus := fmt.Sprintf("%d,%d", e.cy+1, e.rx+1)

	if len(status) > e.screenCols {
		status = status[:e.screenCols]
	}
	ab.WriteString(status)
	for n := len(status); n < e.screenCols; {
		if e.screenCols-n == len(rstatus) {
			ab.WriteString(rstatus)
			break
		}
		ab.WriteByte(' ')
		n++
	}

	ab.WriteString(escAttrsOff)
	ab.WriteString("\r\n")
}

// drawMessageBar renders the line below the status bar: the live
// command prompt while it is open, otherwise the transient status
// message until it expires.
func (e *Editor) drawMessageBar(ab *bytes.Buffer) {
	ab.WriteString(escClearLine)
	if e.mode == ModeCommand {
		line := "> " + string(e.cmdline)
		if len(line) > e.screenCols {
			line = line[len(line)-e.screenCols:]
		}
		ab.WriteString(line)
		return
	}
	if e.status == "" {
		return
	}
	timeout := time.Duration(e.cfg.Editor.MessageTimeout) * time.Second
	if timeout > 0 && time.Since(e.statusTime) > timeout {
		return
	}
	msg := e.status
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	ab.WriteString(msg)
}
