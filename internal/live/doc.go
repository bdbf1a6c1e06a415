// Package live redraws a block of terminal lines in place.
//
// A Frame is the full set of lines shown at one moment. Render turns the
// previous frame and the next one into the cursor-up, clear-line and
// carriage-return sequences that replace the old lines without growing the
// scrollback; it keeps no state. Screen remembers what is currently shown and
// flushes once per frame. Loop fetches frames at a fixed interval and stops at
// the first error.
//
// ListView and StatusView turn router calls into frames for the scan list and
// the live status display.
//
//	screen := live.NewScreen(os.Stdout)
//	loop := &live.Loop{Screen: screen, Interval: time.Second, Mode: "status"}
//	view := &live.StatusView{Gateway: client, SignalEvery: 1}
//	loop.Run(view.Fetch, func(err error) { ... })
package live
