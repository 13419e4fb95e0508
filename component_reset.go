// component_reset.go - Reset() methods for all hardware components (hard reset support)

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

// GeometryEngine.Reset restores the engine to its power-on state.
// Preserves: host, buffers allocation.
func (e *GeometryEngine) Reset() {
	e.state = GX_IDLE
	e.queue.reset()
	e.packedCommands = 0
	e.packedParams = 0
	for i := range e.ports {
		e.ports[i] = 0
	}

	// Matrices
	e.matrixMode = MTX_MODE_PROJECTION
	e.projection = IdentityMatrix()
	e.projectionStack = IdentityMatrix()
	e.projectionPtr = 0
	e.coordinate = IdentityMatrix()
	e.direction = IdentityMatrix()
	for i := range e.coordStack {
		e.coordStack[i] = IdentityMatrix()
		e.dirStack[i] = IdentityMatrix()
	}
	e.coordinatePtr = 0
	e.texture = IdentityMatrix()
	e.textureStack = IdentityMatrix()
	e.texturePtr = 0
	e.clipDirty = true

	e.buffers.reset()

	// Vertex assembly
	e.savedVertex = Vertex{W: FX_ONE}
	e.savedPolygon = Polygon{}
	e.vertexColor = packRGB6(0x3F, 0x3F, 0x3F)
	e.texS, e.texT = 0, 0
	e.vtxS, e.vtxT = 0, 0
	e.textureCoordMode = TEXCOORD_NONE
	e.windowCount = 0
	e.vertexCount = 0
	e.polygonType = PRIM_TRIANGLES
	e.paletteBase = 0
	e.polygonAttr = 0
	e.enabledLights = 0
	e.renderBack = false
	e.renderFront = false
	e.farClip = false

	// Lighting
	e.diffuseColor = 0
	e.ambientColor = 0
	e.specularColor = 0
	e.emissionColor = 0
	e.shininessEnabled = false
	for i := range e.lights {
		e.lights[i] = gxLight{}
	}
	for i := range e.shininess {
		e.shininess[i] = 0
	}

	e.viewport = Viewport{Width: GX_SCREEN_WIDTH, Height: GX_SCREEN_HEIGHT}

	e.gxStat = 0
	e.posResult = [4]int32{}
	e.vecResult = [3]int16{}
}

// SystemBus.Reset clears main memory, interrupt state and DMA channels.
// Preserves: I/O mappings, OnIRQ.
func (bus *SystemBus) Reset() {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	for i := range bus.memory {
		bus.memory[i] = 0
	}
	bus.ime = 0
	bus.ie = 0
	bus.irf = 0
	for i := range bus.dma {
		bus.dma[i] = dmaChannel{}
	}
	bus.dmaActive = false
}

// HardReset resets every component of a machine in dependency order.
func (m *Machine) HardReset() {
	m.Bus.Reset()
	m.GX.Reset()
	Logger().Info("machine reset")
}
