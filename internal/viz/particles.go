package viz

import "math"

// Scene projects the periodic box and its particles onto a canvas. The
// camera orbits the box centre; coordinates are normalized by the box
// length so the cube spans [-0.5, 0.5] on each axis.
type Scene struct {
	rotX, rotY float64
	zoom       float64
}

func NewScene() *Scene {
	return &Scene{rotX: 0.45, rotY: 0.6, zoom: 1.0}
}

func (s *Scene) Rotate(dx, dy float64) {
	s.rotY += dx
	s.rotX += dy
}

func (s *Scene) ZoomIn()  { s.zoom = math.Min(3, s.zoom*1.2) }
func (s *Scene) ZoomOut() { s.zoom = math.Max(0.25, s.zoom/1.2) }

// rotate applies the camera angles to a normalized point.
func (s *Scene) rotate(x, y, z float64) (float64, float64, float64) {
	cx, sx := math.Cos(s.rotX), math.Sin(s.rotX)
	y, z = y*cx-z*sx, y*sx+z*cx
	cy, sy := math.Cos(s.rotY), math.Sin(s.rotY)
	x, z = x*cy+z*sy, -x*sy+z*cy
	return x, y, z
}

// project maps a rotated point to dot coordinates with a mild perspective.
// Points too close to the camera are dropped.
func (s *Scene) project(x, y, z float64, w, h int) (int, int, bool) {
	const dist = 3.0
	x, y, z = x*s.zoom, y*s.zoom, z*s.zoom
	if z > dist-0.5 {
		return 0, 0, false
	}
	scale := dist / (dist - z)
	min := float64(h)
	if float64(w) < min {
		min = float64(w)
	}
	px := 0.6 * min
	return int(x*scale*px) + w/2, int(-y*scale*px) + h/2, true
}

var boxCorners = [8][3]float64{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Render draws the box wireframe and one dot per particle.
func (s *Scene) Render(c *Canvas, box float64, r []float64) {
	c.Clear()
	w, h := c.Width*2, c.Height*4

	var px [8][2]int
	var ok [8]bool
	for i, v := range boxCorners {
		x, y, z := s.rotate(v[0], v[1], v[2])
		px[i][0], px[i][1], ok[i] = s.project(x, y, z, w, h)
	}
	for _, e := range boxEdges {
		if ok[e[0]] && ok[e[1]] {
			c.Line(px[e[0]][0], px[e[0]][1], px[e[1]][0], px[e[1]][1])
		}
	}

	for i := 0; i+2 < len(r); i += 3 {
		x, y, z := s.rotate(r[i]/box, r[i+1]/box, r[i+2]/box)
		if sx, sy, in := s.project(x, y, z, w, h); in {
			c.Set(sx, sy)
		}
	}
}
