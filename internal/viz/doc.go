// Package viz is the live terminal view of a run.
//
// [Model] is a Bubble Tea program that feeds a sim.Driver from its frame
// clock and redraws from the snapshots the driver publishes. The scene is
// drawn on a braille [Canvas]; the graph tab plots height, speed or
// acceleration with asciigraph.
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Reset the current run
//	+/-   - Change speed
//	M     - Next motion type
//	L     - Next gravity location
//	E     - Load the next example prompt
//	/     - Type a prompt, Enter applies it
//	Tab   - Scene, Graphs, Data
//	V     - Next graph series
//	G/T   - Toggle grid/trail
//	C     - Cycle color themes
package viz
