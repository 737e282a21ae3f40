// Distcheck classifies free-text locations against the home radius from the
// command line.
//
//	go run cmd/distcheck/main.go "Nashville, TN" "Houston, TX"
package main

import (
	"fmt"
	"os"

	"github.com/junipr-dev/dealscout/internal/config"
	"github.com/junipr-dev/dealscout/internal/domain/service/location"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: distcheck <location> [<location> ...]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		// Location defaults do not require any env; keep going on config
		// errors caused by unrelated required variables.
		cfg.Location = config.Location{HomeLat: 36.2667, HomeLng: -85.4167, RadiusMiles: 100}
	}

	classifier := location.NewClassifier(
		location.Coordinate{Lat: cfg.Location.HomeLat, Lng: cfg.Location.HomeLng},
		cfg.Location.RadiusMiles,
	)

	for _, loc := range os.Args[1:] {
		distance, ok := classifier.DistanceFromHome(loc)
		if !ok {
			fmt.Printf("%-30s unresolvable (treated as shipping)\n", loc)
			continue
		}

		verdict := "shipping"
		if distance <= classifier.RadiusMiles() {
			verdict = "local pickup"
		}

		fmt.Printf("%-30s %7.1f mi  %s\n", loc, distance, verdict)
	}
}
