// Package viz is the terminal host for the background effects.
//
// Effects draw onto a [Canvas], a braille surface where every cell holds 2x4
// dots. Translucent fills fade the dots, which is how trails survive in a
// terminal. Text is written into whole cells on top of the dots.
//
//   - [Model]: one live effect under a navigation bar that follows a
//     virtual page, with a metrics panel on the right
//   - [NewLauncher]: effect picker and parameter screen in front of a Model
//
// # Key Bindings
//
//	1/2/3 - Particles, rain, glyphs
//	T     - Toggle dark/light
//	J/K   - Scroll the virtual page (mouse wheel too)
//	G     - Smooth scroll to the next section
//	M     - Section menu
//	?     - Show help overlay
//
// Mouse motion over the canvas moves the pointer the particle field is
// drawn to.
package viz
