// Package letterfall renders an ambient "falling letters" overlay: a fixed
// grid of characters derived from a page title, with a continuously
// replenished subset of letters fading in and out at randomized intervals.
//
// The animation core is host-agnostic. A [Driver] orchestrates grid
// construction, the frame loop, resize rebuilds, and teardown against a
// [Host], which supplies the drawing surface, viewport metrics, theme color,
// title text, font readiness, frame scheduling, and resize/teardown
// notifications.
//
// # Quick start
//
// The simplest way to see the overlay is the windowed host, which implements
// [Host] on top of [Ebitengine]:
//
//	host := letterfall.NewWindowHost(letterfall.WindowConfig{
//		PageTitle: "my site | home",
//	})
//	driver := letterfall.NewDriver(host, letterfall.DriverConfig{})
//	if err := driver.Start(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	defer driver.Stop()
//	if err := host.Run("Letterfall", 960, 540); err != nil {
//		log.Fatal(err)
//	}
//
// A terminal-backed host lives in the letterfall/termhost subpackage.
//
// # Animation model
//
// [BuildGrid] lays out one [Cell] per (17, 35) pixel pitch step across the
// viewport, each assigned a character from the title text cycled per column.
// A [Field] owns the grid and the active [FadeInstance] set, sized to
// round(rows x 0.75). Each tick the field clears the surface, eases every
// active instance with [Ease], draws it, and replaces expired instances with
// freshly sampled cells so the population never shrinks. [SampleIndices] is
// the without-replacement selection primitive behind both the initial seed
// and per-tick replenishment.
//
// This package intentionally supports exactly one visual effect. It is not a
// general animation framework.
//
// [Ebitengine]: https://ebitengine.org
package letterfall
