package app

import (
	"fmt"
	"os"

	"github.com/RYSF13/quecto/internal/config"
	"github.com/RYSF13/quecto/internal/editor"
	"github.com/RYSF13/quecto/internal/logger"
	"github.com/RYSF13/quecto/internal/session"
	"github.com/RYSF13/quecto/internal/terminal"
)

// App is the top-level runtime for quecto: it owns the terminal
// session and the editor and runs the read/mutate/render cycle.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run drives the editor until quit. Any error it returns is fatal;
// the terminal is restored on every exit path by the deferred call.
func (a *App) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// No log file is not fatal; the helpers stay no-ops.
	if err := logger.Init(cfg.Log.Debug); err == nil {
		defer logger.Close()
	}

	store, err := session.Open()
	if err != nil {
		logger.Warn("session unavailable", "err", err)
		store = nil
	}

	t, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if err := t.EnableRaw(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer t.Restore()

	rows, cols, err := t.Size()
	if err != nil {
		return err
	}

	ed := editor.New(cfg)
	ed.SetSize(rows, cols)
	if store != nil {
		ed.SetHistory(store.History())
	}

	if len(a.args) > 0 {
		path := a.args[0]
		if err := ed.Open(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		if store != nil {
			if fs, ok := store.FileState(path); ok {
				ed.RestorePosition(fs.CursorRow, fs.CursorCol, fs.ScrollRow)
			}
		}
		logger.Info("opened file", "path", path, "rows", ed.RowCount())
	}

	ed.SetStatus("Ctrl-S save | Ctrl-Q quit | Ctrl-X command")

	for {
		ed.Scroll()
		if _, err := t.Write(ed.RenderFrame()); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		k, ok, err := t.ReadKey()
		if err != nil {
			return err
		}
		if !ok {
			// Idle tick: re-render so transient messages expire.
			continue
		}
		if ed.HandleKey(k) {
			break
		}
	}

	if store != nil {
		if path := ed.Filename(); path != "" {
			row, col := ed.Cursor()
			store.SetFileState(path, session.FileState{
				CursorRow: row,
				CursorCol: col,
				ScrollRow: ed.ScrollRow(),
			})
		}
		store.SetHistory(ed.History())
		if err := store.Save(); err != nil {
			logger.Warn("session save", "err", err)
		}
	}

	// Leave a clean screen behind; the deferred Restore then puts the
	// terminal mode back.
	_, _ = t.Write([]byte("\x1b[0m\x1b[2J\x1b[H"))
	return nil
}
