//go:build !headless

// gx_viewer_ebiten.go - Ebiten window showing the exposed polygon list

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
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "viewer:ebiten")
}

// ViewerOptions configures the preview window.
type ViewerOptions struct {
	Snapshot SnapshotOptions
	Frames   int // Pause after this many frames; 0 runs until closed
}

type gxViewer struct {
	m      *Machine
	script *ScriptHost
	opts   ViewerOptions
	width  int
	height int

	frame      *ebiten.Image
	frameMutex sync.Mutex
	paused     bool
	status     string
	showStatus bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

// RunViewer opens a window and runs the machine one frame per tick until
// the window is closed. The script's frame function is called before every
// vertical blank.
func RunViewer(m *Machine, script *ScriptHost, opts ViewerOptions) error {
	scale := max(opts.Snapshot.Scale, 1)
	opts.Snapshot.Scale = scale
	v := &gxViewer{
		m:          m,
		script:     script,
		opts:       opts,
		width:      GX_SCREEN_WIDTH * scale,
		height:     GX_SCREEN_HEIGHT * scale,
		showStatus: true,
	}

	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowTitle("IntuitionGX (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetVsyncEnabled(true)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

func (v *gxViewer) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		v.m.HardReset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		v.showStatus = !v.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		v.opts.Snapshot.Wireframe = !v.opts.Snapshot.Wireframe
		if err := v.refresh(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copyDump()
	}

	if v.opts.Frames > 0 && v.m.Frame >= v.opts.Frames {
		v.paused = true
	}
	if !v.paused {
		if err := v.script.CallFrame(v.m.Frame); err != nil {
			return err
		}
		if v.m.VBlank() {
			if err := v.refresh(); err != nil {
				return err
			}
		}
	}

	gx := v.m.GX
	v.status = fmt.Sprintf("frame %d  polys %d  verts %d  %s  fifo %d",
		v.m.Frame, gx.PolygonCount(), gx.VertexCount(), gx.State(), gx.ReadFIFOCount())
	if v.paused {
		v.status += "  paused"
	}
	return nil
}

// refresh re-renders the exposed frame into the window image.
func (v *gxViewer) refresh() error {
	img, err := PreviewImage(v.m.GX, v.opts.Snapshot)
	if err != nil {
		return err
	}
	next := ebiten.NewImageFromImage(img)

	v.frameMutex.Lock()
	old := v.frame
	v.frame = next
	v.frameMutex.Unlock()
	if old != nil {
		old.Deallocate()
	}
	return nil
}

func (v *gxViewer) copyDump() {
	v.clipboardOnce.Do(func() {
		v.clipboardOK = clipboard.Init() == nil
	})
	if !v.clipboardOK {
		Logger().Warn("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(FrameDump(v.m.GX)))
	Logger().Info("frame dump copied", "frame", v.m.Frame)
}

func (v *gxViewer) Draw(screen *ebiten.Image) {
	v.frameMutex.Lock()
	frame := v.frame
	v.frameMutex.Unlock()
	if frame != nil {
		screen.DrawImage(frame, nil)
	}
	if !v.showStatus {
		return
	}

	barHeight := 18
	y := v.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(v.width), float64(barHeight), color.RGBA{0, 0, 0, 180})
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(6, float64(y+13))
	opts.ColorScale.ScaleWithColor(color.RGBA{160, 160, 160, 255})
	text.DrawWithOptions(screen, v.status, basicfont.Face7x13, opts)
}

func (v *gxViewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
