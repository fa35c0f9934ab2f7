// Package fx provides the animated backgrounds of the portfolio page.
//
// Three independent engines implement [Animator]:
//
//   - [ParticleField]: drifting nodes joined by distance-faded links, attracted to the pointer
//   - [SymbolRain]: columns of falling glyphs with a fading trail
//   - [FloatingGlyphs]: rotating code tokens that wrap at the edges and pulse in opacity
//
// Each animator owns its batch and paints into exactly one [Surface] per
// frame. A [Stage] is the owning view: it mounts animators onto surfaces,
// fans out resize, theme and pointer events, and releases timers on Close.
//
// # Example
//
//	stage := fx.NewStage()
//	stage.Mount(fx.NewParticleField(fx.DefaultParticleConfig(), rng), surface)
//	stage.Resize(1920, 1080)
//	for range ticker.C {
//		stage.Frame()
//	}
//
// # Thread Safety
//
// Animators are NOT safe for concurrent use. Drive each one from a single
// goroutine, such as a [loop.Loop] or a bubbletea Update.
package fx
