package sunarc

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

const (
	// screen coords: 0°=right(3 o'clock), 90°=down(6 o'clock), 180°=left(9 o'clock), 270°=up(12 o'clock)
	// the sky arc runs from the left horizon (sunrise) over the top to the right horizon (sunset)
	arcStartAngle = 180.0
	arcSweep      = 180.0
	arcThickness  = 1
)

// drawArc draws a thick arc on the canvas from startAngle sweeping through sweepAngle degrees.
// uses the midpoint circle algorithm for clean, gap-free rendering.
// see: https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func drawArc(canvas *drawille.Canvas, centerX, centerY, radius float64, startAngle, sweepAngle float64) {
	endAngle := startAngle + sweepAngle

	for t := range arcThickness {
		r := int(radius) - t
		if r <= 0 {
			continue
		}
		midpointCircleArc(canvas, int(centerX), int(centerY), r, startAngle, endAngle)
	}
}

func midpointCircleArc(canvas *drawille.Canvas, cx, cy, radius int, startAngle, endAngle float64) {
	x := radius
	y := 0
	d := 1 - radius

	for x >= y {
		drawOctantPoints(canvas, cx, cy, x, y, startAngle, endAngle)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func drawOctantPoints(canvas *drawille.Canvas, cx, cy, x, y int, startAngle, endAngle float64) {
	points := [][2]int{
		{cx + x, cy - y},
		{cx + y, cy - x},
		{cx - y, cy - x},
		{cx - x, cy - y},
		{cx - x, cy + y},
		{cx - y, cy + x},
		{cx + y, cy + x},
		{cx + x, cy + y},
	}

	for _, p := range points {
		if isInArcRange(cx, cy, p[0], p[1], startAngle, endAngle) {
			canvas.Set(p[0], p[1])
		}
	}
}

// isInArcRange checks if a point's angle from center falls within [startAngle, endAngle].
// handles wraparound (e.g., startAngle=345, endAngle=675).
func isInArcRange(cx, cy, px, py int, startAngle, endAngle float64) bool {
	dx := float64(px - cx)
	dy := float64(py - cy)

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	// the horizon points sit at exactly 0° and 180°
	if angle == 0 && endAngle >= 360 {
		angle = 360
	}

	if endAngle > 360 {
		return angle >= startAngle || angle <= (endAngle-360)
	}
	return angle >= startAngle && angle <= endAngle
}

func drawTrack(canvas *drawille.Canvas, centerX, centerY, radius float64) {
	drawArc(canvas, centerX, centerY, radius, arcStartAngle, arcSweep)
}

func drawLit(canvas *drawille.Canvas, centerX, centerY, radius float64, progress float64) {
	if progress <= 0 {
		return
	}
	progress = min(progress, 1)
	drawArc(canvas, centerX, centerY, radius, arcStartAngle, progress*arcSweep)
}
