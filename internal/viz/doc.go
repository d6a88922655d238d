// Package viz converts geometry objects into renderable traces and draws
// them, either as plotly-style figures for the browser or onto a braille
// canvas for the terminal.
//
// Types participate in figure building through the Visualizable
// capability:
//
//	type Visualizable interface {
//		MakeTraces() []Trace
//	}
//
// Plain geometry values (geom.Vec3, []geom.Vec3, geom.Ray, []geom.Ray)
// are handled by MakeTraces directly; anything else must implement
// Visualizable or is rejected with an error.
package viz
