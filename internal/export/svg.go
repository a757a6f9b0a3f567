// Package export renders run artifacts to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/galaxsph/internal/evolve"
)

// SnapshotToSVG renders the x/y projection of a particle snapshot. Dot
// radius scales with the smoothing length so resolution is visible at a
// glance.
func SnapshotToSVG(snap evolve.Snapshot, size int) string {
	if len(snap.Particles) == 0 {
		return ""
	}

	minX, maxX := snap.Particles[0].Pos[0], snap.Particles[0].Pos[0]
	minY, maxY := snap.Particles[0].Pos[1], snap.Particles[0].Pos[1]
	maxH := 0.0
	for _, p := range snap.Particles {
		minX = min(minX, p.Pos[0])
		maxX = max(maxX, p.Pos[0])
		minY = min(minY, p.Pos[1])
		maxY = max(maxY, p.Pos[1])
		maxH = max(maxH, p.H)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#9ecfff" fill-opacity="0.7">
`, size, size, size, size))

	for _, p := range snap.Particles {
		cx := (p.Pos[0] - minX) / rangeX * float64(size)
		cy := float64(size) - (p.Pos[1]-minY)/rangeY*float64(size)
		r := 1.0
		if maxH > 0 {
			r = 0.5 + 2.5*p.H/maxH
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, r))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG renders one metric history as a polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := len(times)
	if n > len(values) {
		n = len(values)
	}
	if n < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[:n] {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	rangeT := times[n-1] - times[0]
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (times[i] - times[0]) / rangeT * float64(width)
		y := float64(height) - (values[i]-minV)/rangeV*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
