package editor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/RYSF13/quecto/internal/logger"
)

// execCommand runs one prompt line and reports whether the editor
// should quit.
func (e *Editor) execCommand(cmd string) bool {
	if cmd == "" {
		return false
	}

	switch cmd {
	case "q":
		if e.Dirty() {
			e.SetStatus("Unsaved changes! Use q! to discard.")
			return false
		}
		return true
	case "q!":
		return true
	case "w":
		e.saveFile()
		return false
	case "wq":
		if e.Filename() == "" {
			e.SetStatus("no file name")
			return false
		}
		if err := e.Save(); err != nil {
			logger.Error("save failed", "path", e.Filename(), "err", err)
			e.SetStatus("Error: %v", err)
			return false
		}
		return true
	}

	if isDigits(cmd) {
		n, err := strconv.Atoi(cmd)
		if err == nil {
			e.gotoLine(n)
			return false
		}
	}

	if strings.HasPrefix(cmd, "r/") {
		pat, repl, flags, ok := parseReplace(cmd)
		if !ok {
			e.SetStatus("malformed replace: %s", cmd)
			return false
		}
		e.regexReplace(pat, repl, flags)
		return false
	}

	e.SetStatus("unknown command: %s", cmd)
	return false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// gotoLine moves the cursor to a 1-based line number, clamped to the
// valid range.
func (e *Editor) gotoLine(n int) {
	if e.RowCount() == 0 {
		e.cy, e.cx = 0, 0
		return
	}
	if n < 1 {
		n = 1
	}
	if n > e.RowCount() {
		n = e.RowCount()
	}
	e.cy = n - 1
	e.cx = 0
}

// parseReplace splits r/<pattern>/<replacement>/<flags>. The flags
// segment and its leading slash are optional.
func parseReplace(cmd string) (pat, repl, flags string, ok bool) {
	parts := strings.SplitN(cmd[len("r/"):], "/", 3)
	if len(parts) < 2 || parts[0] == "" {
		return "", "", "", false
	}
	pat, repl = parts[0], parts[1]
	if len(parts) == 3 {
		flags = parts[2]
	}
	return pat, repl, flags, true
}

// regexReplace performs a POSIX extended-regex substitution over the
// buffer. Flag `g` replaces every match within a row; flag `G` keeps
// scanning past the first row with a match. With neither flag exactly
// one occurrence is replaced. The search offset always advances past
// the inserted replacement so it is never re-matched.
func (e *Editor) regexReplace(pattern, repl, flags string) {
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		logger.Debug("regex compile failed", "pattern", pattern, "err", err)
		e.SetStatus("Error: Invalid Regex")
		return
	}
	lineGlobal := strings.ContainsRune(flags, 'g')
	bufGlobal := strings.ContainsRune(flags, 'G')

	count := 0
	for i := 0; i < e.RowCount(); i++ {
		matched := false
		offset := 0
		for offset <= len(e.rows[i]) {
			loc := re.FindIndex(e.rows[i][offset:])
			if loc == nil {
				break
			}
			start := offset + loc[0]
			end := offset + loc[1]

			row := e.rows[i]
			spliced := make([]byte, 0, len(row)+len(repl)-(end-start))
			spliced = append(spliced, row[:start]...)
			spliced = append(spliced, repl...)
			spliced = append(spliced, row[end:]...)
			e.rows[i] = spliced
			e.dirty++
			count++
			matched = true

			offset = start + len(repl)
			// A zero-width match grows the row as fast as the offset
			// advances; step over one byte to guarantee progress.
			if end == start {
				offset++
			}
			if !lineGlobal {
				break
			}
		}
		if matched && !bufGlobal {
			break
		}
	}

	e.clampCursor()
	e.SetStatus("Replaced %d occurrences", count)
}
