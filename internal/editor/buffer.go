package editor

import (
	"bytes"
	"errors"
	"os"
)

// Buffer is the ordered sequence of text rows plus everything that
// positions the user inside it: cursor (row index, byte offset),
// viewport offsets, the dirty counter and the bound filename. All
// mutation goes through its methods; every mutating call bumps the
// dirty counter, Load and a successful Save reset it.
type Buffer struct {
	rows     [][]byte
	cy, cx   int // cursor: row index, byte offset within the row
	rowOff   int // first visible row
	colOff   int // first visible display column
	dirty    int
	filename string
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) RowCount() int { return len(b.rows) }

func (b *Buffer) Row(i int) []byte {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i]
}

func (b *Buffer) Cursor() (row, col int) { return b.cy, b.cx }

func (b *Buffer) Dirty() bool { return b.dirty > 0 }

func (b *Buffer) Filename() string { return b.filename }

// InsertRow inserts a copy of s as a new row at position at,
// shifting subsequent rows down.
func (b *Buffer) InsertRow(at int, s []byte) {
	if at < 0 || at > len(b.rows) {
		return
	}
	row := append([]byte(nil), s...)
	b.rows = append(b.rows, nil)
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = row
	b.dirty++
}

// DeleteRow removes the row at position at, shifting subsequent rows
// up.
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.rows) {
		return
	}
	b.rows = append(b.rows[:at], b.rows[at+1:]...)
	b.dirty++
}

// InsertByte grows row by one byte at offset at.
func (b *Buffer) InsertByte(row, at int, c byte) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	r := b.rows[row]
	if at < 0 || at > len(r) {
		at = len(r)
	}
	r = append(r, 0)
	copy(r[at+1:], r[at:])
	r[at] = c
	b.rows[row] = r
	b.dirty++
}

// DeleteBytes removes n bytes from row starting at offset at. Out of
// range offsets are a no-op.
func (b *Buffer) DeleteBytes(row, at, n int) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	r := b.rows[row]
	if at < 0 || at >= len(r) || n <= 0 {
		return
	}
	if at+n > len(r) {
		n = len(r) - at
	}
	b.rows[row] = append(r[:at], r[at+n:]...)
	b.dirty++
}

// AppendBytes concatenates s onto the end of row.
func (b *Buffer) AppendBytes(row int, s []byte) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	b.rows[row] = append(b.rows[row], s...)
	b.dirty++
}

// Serialize concatenates all rows for persistence, one line terminator
// after every row including the last.
func (b *Buffer) Serialize() []byte {
	var out bytes.Buffer
	for _, r := range b.rows {
		out.Write(r)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// InsertChar inserts one byte of input at the cursor. On the virtual
// row past the end of the buffer it first appends a real empty row.
func (b *Buffer) InsertChar(c byte) {
	if b.cy == len(b.rows) {
		b.InsertRow(len(b.rows), nil)
	}
	b.InsertByte(b.cy, b.cx, c)
	b.cx++
}

// InsertNewline splits the current row at the cursor.
func (b *Buffer) InsertNewline() {
	if b.cx == 0 {
		b.InsertRow(b.cy, nil)
	} else {
		rest := append([]byte(nil), b.rows[b.cy][b.cx:]...)
		b.InsertRow(b.cy+1, rest)
		b.rows[b.cy] = b.rows[b.cy][:b.cx]
	}
	b.cy++
	b.cx = 0
}

// DeleteBackward implements backspace: remove the whole codepoint
// before the cursor, or merge into the previous row at column 0.
func (b *Buffer) DeleteBackward() {
	if b.cy == len(b.rows) {
		return
	}
	if b.cx == 0 && b.cy == 0 {
		return
	}
	if b.cx > 0 {
		start := prevBoundary(b.rows[b.cy], b.cx)
		b.DeleteBytes(b.cy, start, b.cx-start)
		b.cx = start
		return
	}
	prevLen := len(b.rows[b.cy-1])
	b.AppendBytes(b.cy-1, b.rows[b.cy])
	b.DeleteRow(b.cy)
	b.cy--
	b.cx = prevLen
}

// DeleteForward implements the Delete key: remove the codepoint under
// the cursor, or merge the next row in at end of line.
func (b *Buffer) DeleteForward() {
	if b.cy >= len(b.rows) {
		return
	}
	row := b.rows[b.cy]
	if b.cx < len(row) {
		b.DeleteBytes(b.cy, b.cx, nextBoundary(row, b.cx)-b.cx)
		return
	}
	if b.cy < len(b.rows)-1 {
		b.AppendBytes(b.cy, b.rows[b.cy+1])
		b.DeleteRow(b.cy + 1)
	}
}

// Load populates the buffer from path and binds it as the save target.
// A missing file leaves the buffer empty but keeps the binding.
func (b *Buffer) Load(path string) error {
	b.filename = path
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			b.dirty = 0
			return nil
		}
		return err
	}
	if len(data) > 0 {
		lines := bytes.Split(data, []byte{'\n'})
		if data[len(data)-1] == '\n' {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			b.InsertRow(len(b.rows), bytes.TrimSuffix(line, []byte{'\r'}))
		}
	}
	b.dirty = 0
	return nil
}

// Save writes the serialized buffer to the bound filename. On failure
// the buffer stays dirty.
func (b *Buffer) Save() error {
	if b.filename == "" {
		return errors.New("no file name")
	}
	if err := os.WriteFile(b.filename, b.Serialize(), 0o644); err != nil {
		return err
	}
	b.dirty = 0
	return nil
}
