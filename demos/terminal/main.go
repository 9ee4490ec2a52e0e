// Terminal renders the falling-letters overlay directly in the terminal via
// the termhost adapter. Resize the terminal to exercise the rebuild path;
// press q, Esc, or Ctrl-C to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand/v2"

	"github.com/phanxgames/letterfall"
	"github.com/phanxgames/letterfall/termhost"
)

func main() {
	title := flag.String("title", "letterfall | terminal demo", "page title the grid characters derive from")
	color := flag.String("color", "100, 255, 218", "primary color as an \"R, G, B\" channel triple")
	fps := flag.Int("fps", 30, "frames per second")
	seed := flag.Uint64("seed", 0, "fixed random seed (0 picks one at random)")
	flag.Parse()

	host, err := termhost.New(termhost.Config{
		PageTitle:  *title,
		ThemeColor: *color,
		FPS:        *fps,
	})
	if err != nil {
		log.Fatalf("terminal host: %v", err)
	}

	cfg := letterfall.DriverConfig{}
	if *seed != 0 {
		cfg.Field.Rand = rand.New(rand.NewPCG(*seed, *seed))
	}

	driver := letterfall.NewDriver(host, cfg)
	if err := driver.Start(context.Background()); err != nil {
		log.Fatalf("start overlay: %v", err)
	}
	defer driver.Stop()

	if err := host.Run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
