// Package loop schedules per-frame work.
//
// A [Loop] runs its frame functions at a fixed rate on one goroutine and
// interleaves posted events between frames, so the code it drives never
// needs locking. The owner keeps the [Handle] returned by Start and calls
// Stop when the view goes away.
//
// A [Debouncer] fires a function once a burst of triggers has been quiet for
// a delay.
package loop
