// Package browser runs the gesture engine against a real Chromium page.
//
// A Session launches Chromium through Playwright and installs a small page
// script that forwards mouse events to Go through an exposed binding. The
// Host turns those events into engine input and queues the resulting action
// requests; an Executor carries them out on the session's tabs.
//
// Typical wiring:
//
//	sess, err := browser.Launch(browser.Options{Headless: false})
//	host := browser.NewHost(engine, sess.Executor(), logger)
//	if err := sess.Attach(host); err != nil { ... }
//	if err := sess.Open("https://example.org"); err != nil { ... }
//	go host.Run(ctx)
//
// Execution failures are reported to the host's logger. The engine never
// learns about them.
package browser
