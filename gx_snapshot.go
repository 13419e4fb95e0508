// gx_snapshot.go - Preview rendering of the exposed polygon list

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
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gogpu/gg"
)

// SnapshotOptions controls preview rendering.
type SnapshotOptions struct {
	Scale     int  // Output pixels per screen pixel
	Wireframe bool // Outline every polygon
}

// RenderPreview draws the exposed frame as flat-shaded polygons in
// submission order. It is a debugging aid, not a rasterizer: each polygon is
// filled with the average of its vertex colors and its alpha; alpha 0
// polygons are drawn as outlines, matching the hardware's wireframe mode.
// The caller owns the returned context and must Close it.
func RenderPreview(gx *GeometryEngine, opts SnapshotOptions) (*gg.Context, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(GX_SCREEN_WIDTH*scale, GX_SCREEN_HEIGHT*scale)
	dc.ClearWithColor(gg.RGB(0, 0, 0))
	dc.SetLineWidth(float64(scale) * 0.5)

	polys := gx.Polygons()
	for i := range polys {
		p := &polys[i]
		verts := gx.Vertices(p)
		if len(verts) < 3 {
			continue
		}

		var rs, gs, bs int32
		for j := range verts {
			r, g, b := unpackRGB6(verts[j].Color)
			rs += r
			gs += g
			bs += b
		}
		n := float64(len(verts)) * 63
		r, g, b := float64(rs)/n, float64(gs)/n, float64(bs)/n

		for j := range verts {
			x, y := p.Viewport.Project(&verts[j])
			x *= float64(scale)
			y *= float64(scale)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()

		if p.Alpha == 0 {
			dc.SetRGB(r, g, b)
			if err := dc.Stroke(); err != nil {
				return dc, fmt.Errorf("snapshot: stroke polygon %d: %w", i, err)
			}
			continue
		}

		dc.SetRGBA(r, g, b, float64(p.Alpha)/31)
		if opts.Wireframe {
			if err := dc.FillPreserve(); err != nil {
				return dc, fmt.Errorf("snapshot: fill polygon %d: %w", i, err)
			}
			dc.SetRGB(1, 1, 1)
			if err := dc.Stroke(); err != nil {
				return dc, fmt.Errorf("snapshot: stroke polygon %d: %w", i, err)
			}
			continue
		}
		if err := dc.Fill(); err != nil {
			return dc, fmt.Errorf("snapshot: fill polygon %d: %w", i, err)
		}
	}
	return dc, nil
}

// PreviewImage renders the exposed frame and returns the resulting image.
func PreviewImage(gx *GeometryEngine, opts SnapshotOptions) (image.Image, error) {
	dc, err := RenderPreview(gx, opts)
	defer dc.Close()
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SaveSnapshot renders the exposed frame to path. The format follows the
// extension: .png via gg, .webp via nativewebp (lossless).
func SaveSnapshot(path string, gx *GeometryEngine, opts SnapshotOptions) error {
	dc, err := RenderPreview(gx, opts)
	defer dc.Close()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := dc.SavePNG(path); err != nil {
			return fmt.Errorf("snapshot: save %s: %w", path, err)
		}
	case ".webp":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		defer f.Close()
		if err := nativewebp.Encode(f, dc.Image(), nil); err != nil {
			return fmt.Errorf("snapshot: webp encode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("snapshot: %s: unsupported format", path)
	}

	Logger().Info("snapshot written", "path", path, "polygons", len(gx.Polygons()))
	return nil
}

// snapshotPath expands a "%d" verb in pattern with the frame number. Paths
// without a verb are returned unchanged so every frame overwrites one file.
func snapshotPath(pattern string, frame int) string {
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, frame)
	}
	return pattern
}
