// Package nav tracks which page section is in view and drives smooth
// scrolling to a section.
//
// A [Tracker] recomputes its [State] from scratch on every scroll: whether
// the page has scrolled past a threshold, and which section is active. The
// section geometry comes from a [Page]; [VirtualPage] stacks sections of
// known height for hosts without a real document.
package nav
