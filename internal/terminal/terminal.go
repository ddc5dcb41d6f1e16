package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/RYSF13/quecto/internal/logger"
)

// Session owns the controlling terminal: raw-mode configuration, key
// decoding and geometry. All frame output goes through Write so the
// renderer never touches the file descriptors directly.
type Session struct {
	in   *os.File
	out  *os.File
	orig *unix.Termios
}

// Open wraps the given streams. It fails when the input stream is not
// a terminal, since raw mode is meaningless otherwise.
func Open(in, out *os.File) (*Session, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, errors.New("stdin is not a terminal")
	}
	return &Session{in: in, out: out}, nil
}

// EnableRaw snapshots the current termios state and switches the
// terminal to raw mode: no canonical buffering, no echo, no signal
// keys, no output post-processing. VMIN=0/VTIME=1 makes every read
// return after at most 100ms, which is what lets the editor loop tick
// while idle.
func (s *Session) EnableRaw() error {
	t, err := unix.IoctlGetTermios(int(s.in.Fd()), ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	orig := *t
	s.orig = &orig

	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(int(s.in.Fd()), ioctlWriteTermios, t); err != nil {
		s.orig = nil
		return fmt.Errorf("set termios: %w", err)
	}
	return nil
}

// Restore reinstalls the termios state captured by EnableRaw. It is
// idempotent so it can sit behind a defer and still be called early on
// explicit exit paths.
func (s *Session) Restore() {
	if s.orig == nil {
		return
	}
	if err := unix.IoctlSetTermios(int(s.in.Fd()), ioctlWriteTermios, s.orig); err != nil {
		logger.Error("restore termios", "err", err)
	}
	s.orig = nil
}

// Size returns the terminal geometry as rows, cols.
func (s *Session) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(int(s.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	cols, rows, terr := term.GetSize(int(s.out.Fd()))
	if terr == nil && cols > 0 {
		return rows, cols, nil
	}
	if err == nil {
		err = terr
	}
	if err == nil {
		err = errors.New("terminal reports zero size")
	}
	return 0, 0, fmt.Errorf("query window size: %w", err)
}

// Write flushes one assembled frame to the terminal.
func (s *Session) Write(frame []byte) (int, error) {
	return s.out.Write(frame)
}

// ReadKey waits for one key. ok is false when the read timed out with
// no input, which the caller uses as an idle tick. A bare escape byte
// followed by silence decodes as KeyEscape; recognized CSI/SS3
// sequences decode to their semantic keys.
func (s *Session) ReadKey() (Key, bool, error) {
	b, ok, err := s.readByte()
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	if b != byte(KeyEscape) {
		return Key(b), true, nil
	}
	k, err := s.decodeEscape()
	if err != nil {
		return 0, false, err
	}
	return k, true, nil
}

func (s *Session) decodeEscape() (Key, error) {
	d := newDecoder()
	for {
		b, ok, err := s.readByte()
		if err != nil {
			return 0, err
		}
		if !ok {
			// Incomplete sequence: the user pressed a lone ESC.
			return KeyEscape, nil
		}
		if k, done := d.feed(b); done {
			return k, nil
		}
	}
}

// readByte performs one raw read. With VTIME set the kernel returns
// zero bytes on timeout, which os.File surfaces as io.EOF.
func (s *Session) readByte() (byte, bool, error) {
	var buf [1]byte
	n, err := s.in.Read(buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read key: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}
