// gx_dump.go - Text dump of the exposed polygon list

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
	"io"
	"strings"
)

// WriteFrameDump writes one line per exposed polygon followed by its
// vertices. The format is stable so dumps can be diffed between runs.
func WriteFrameDump(w io.Writer, gx *GeometryEngine) error {
	polys := gx.Polygons()
	if _, err := fmt.Fprintf(w, "frame: %d polygons, %d vertices, manual sort %v\n",
		len(polys), gx.VertexCount(), gx.ManualSort()); err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	for i := range polys {
		p := &polys[i]
		winding := "ccw"
		if p.Clockwise {
			winding = "cw"
		}
		_, err := fmt.Fprintf(w, "poly %d: %d verts %s mode %d alpha %d id %d tex 0x%05X fmt %d %dx%d pal 0x%05X wshift %d wbuf %v crossed %v\n",
			i, p.VertexCount, winding, p.Mode, p.Alpha, p.ID,
			p.TextureAddr, p.TextureFormat, p.TextureWidth(), p.TextureHeight(),
			p.PaletteAddr, p.WShift, p.WBuffer, p.Crossed)
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}

		for j, v := range gx.Vertices(p) {
			r, g, b := unpackRGB6(v.Color)
			_, err := fmt.Fprintf(w, "  v%d: x %d y %d z %d w %d s %d t %d rgb %02X%02X%02X\n",
				j, v.X, v.Y, v.Z, v.W, v.S, v.T, r, g, b)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
		}
	}
	return nil
}

// FrameDump returns WriteFrameDump output as a string.
func FrameDump(gx *GeometryEngine) string {
	var sb strings.Builder
	_ = WriteFrameDump(&sb, gx)
	return sb.String()
}
