// terminal_host.go - Interactive Lua console on the host terminal

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalHost runs an interactive Lua console against a machine.
// Only instantiated in main.go for interactive use; tests drive Serve
// with an in-memory stream.
type TerminalHost struct {
	script       *ScriptHost
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a console for the given script host.
func NewTerminalHost(script *ScriptHost) *TerminalHost {
	return &TerminalHost{script: script, fd: -1}
}

// Run puts stdin in raw mode (when it is a terminal) and serves the console
// on stdin/stdout until the user quits. Call Stop() to restore stdin.
func (h *TerminalHost) Run() error {
	h.fd = int(os.Stdin.Fd())
	if term.IsTerminal(h.fd) {
		// Raw mode disables OS-level echo and line buffering; the line
		// editor handles both.
		oldState, err := term.MakeRaw(h.fd)
		if err != nil {
			return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
		}
		h.oldTermState = oldState
		defer h.Stop()
	}

	return h.Serve(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout})
}

// Stop restores stdin to the state it had before Run.
func (h *TerminalHost) Stop() {
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// Serve reads console lines from rw until EOF or "quit". Each line is either
// a console command or a Lua chunk executed in the script host.
func (h *TerminalHost) Serve(rw io.ReadWriter) error {
	t := term.NewTerminal(rw, "gx> ")
	h.script.SetOutput(t)
	defer h.script.SetOutput(os.Stdout)

	fmt.Fprintln(t, "IntuitionGX console. Lua with the gx module; commands: dump, stat, frame, reset, quit")
	for {
		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("terminal_host: %w", err)
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case "":
		case "quit", "exit":
			return nil
		case "dump":
			if err := WriteFrameDump(t, h.script.m.GX); err != nil {
				fmt.Fprintf(t, "error: %v\n", err)
			}
		case "stat":
			gx := h.script.m.GX
			fmt.Fprintf(t, "GXSTAT %08X state %s fifo %d ram %08X\n",
				gx.ReadGXStat(), gx.State(), gx.ReadFIFOCount(), gx.ReadRAMCount())
		case "frame":
			swapped := h.script.m.VBlank()
			fmt.Fprintf(t, "frame %d swapped %v polygons %d\n",
				h.script.m.Frame, swapped, h.script.m.GX.PolygonCount())
		case "reset":
			h.script.m.HardReset()
		default:
			if err := h.script.RunString(cmd); err != nil {
				fmt.Fprintf(t, "error: %v\n", err)
			}
		}
	}
}
