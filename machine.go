// machine.go - Host machine: bus, geometry engine and frame pacing

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

// Machine wires a geometry engine to a system bus and paces frames the way
// the display controller would: the engine runs between CPU writes and a
// vertical blank swaps buffers when the engine asked for it.
type Machine struct {
	Bus *SystemBus
	GX  *GeometryEngine

	// Frame counts completed vertical blanks.
	Frame int

	// OnFrame, when set, is called after every vertical blank that exposed
	// a new frame.
	OnFrame func(m *Machine)
}

func NewMachine() *Machine {
	bus := NewSystemBus()
	gx := NewGeometryEngine(bus)
	bus.AttachGeometryEngine(gx)
	return &Machine{Bus: bus, GX: gx}
}

// Step runs the geometry engine until it can make no more progress.
// DMA refills requested while draining are executed as part of the step.
func (m *Machine) Step() {
	for m.GX.PollIsReady() {
		m.GX.RunPending()
	}
}

// VBlank finishes the current frame. It reports whether a new frame was
// exposed, which only happens once SWAP_BUFFERS has halted the engine.
func (m *Machine) VBlank() bool {
	m.Step()
	m.Frame++
	if !m.GX.ShouldSwap() {
		return false
	}
	m.GX.SwapBuffers()
	Logger().Info("frame exposed",
		"frame", m.Frame,
		"polygons", m.GX.PolygonCount(),
		"vertices", m.GX.VertexCount())
	if m.OnFrame != nil {
		m.OnFrame(m)
	}
	// Commands queued behind SWAP_BUFFERS belong to the next frame
	m.Step()
	return true
}
