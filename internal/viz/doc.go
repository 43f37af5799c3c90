// Package viz renders a live terminal view of a running simulation.
//
// [Model] is a Bubble Tea program that steps the integrator in timed
// bursts and charts the energy, temperature and pressure histories. The
// v key switches to a rotatable rendering of the periodic box: [Scene]
// projects the particles onto a braille [Canvas].
//
// # Key Bindings
//
//	Space  - pause/resume stepping
//	V      - toggle the box view
//	Arrows - rotate the camera
//	+/-    - zoom
//	Q      - quit
package viz
