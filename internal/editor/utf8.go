package editor

// Codepoint boundary helpers shared by deletion, cursor movement and
// rendering, so every path agrees on where a UTF-8 sequence starts and
// how wide it draws.

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// prevBoundary returns the start of the codepoint that ends before
// offset i.
func prevBoundary(row []byte, i int) int {
	if i <= 0 {
		return 0
	}
	i--
	for i > 0 && isContinuation(row[i]) {
		i--
	}
	return i
}

// nextBoundary returns the first codepoint start after offset i.
func nextBoundary(row []byte, i int) int {
	if i >= len(row) {
		return len(row)
	}
	i++
	for i < len(row) && isContinuation(row[i]) {
		i++
	}
	return i
}

// snapBoundary clamps i into the row and moves it left onto a
// codepoint start if it landed on a continuation byte.
func snapBoundary(row []byte, i int) int {
	if i > len(row) {
		i = len(row)
	}
	if i < 0 {
		i = 0
	}
	for i > 0 && i < len(row) && isContinuation(row[i]) {
		i--
	}
	return i
}

// seqWidth classifies a lead byte: sequence length in bytes and its
// display width. Two-byte sequences (Latin/Cyrillic) take one column,
// three- and four-byte sequences (CJK, emoji) take two. Anything else,
// including malformed lead bytes, counts as a single one-column byte.
func seqWidth(b byte) (size, width int) {
	switch {
	case b&0xE0 == 0xC0:
		return 2, 1
	case b&0xF0 == 0xE0:
		return 3, 2
	case b&0xF8 == 0xF0:
		return 4, 2
	default:
		return 1, 1
	}
}

// displayCol maps a byte offset within row to its display column,
// expanding tabs to the next stop.
func displayCol(row []byte, cx, tabStop int) int {
	col := 0
	for j := 0; j < cx && j < len(row); {
		b := row[j]
		if b == '\t' {
			col += tabStop - col%tabStop
			j++
			continue
		}
		size, w := seqWidth(b)
		col += w
		j += size
	}
	return col
}
