package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/randytsao24/railronda/internal/models"
)

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "Plan an itinerary between two stations",
		ArgsUsage: "<from> <to>",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "lat", Usage: "destination latitude", Required: true},
			&cli.Float64Flag{Name: "lng", Usage: "destination longitude", Required: true},
			&cli.Float64Flag{Name: "end-lat", Usage: "end station latitude (defaults to the topology)"},
			&cli.Float64Flag{Name: "end-lng", Usage: "end station longitude (defaults to the topology)"},
			&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("route needs exactly two station names", 2)
			}
			if c.IsSet("end-lat") != c.IsSet("end-lng") {
				return cli.Exit("--end-lat and --end-lng must be given together", 2)
			}

			app, err := loadCore()
			if err != nil {
				return err
			}

			from, to := c.Args().Get(0), c.Args().Get(1)
			destination := models.Coordinate{Lat: c.Float64("lat"), Lng: c.Float64("lng")}

			var result *models.RouteResult
			if c.IsSet("end-lat") {
				endLocation := models.Coordinate{Lat: c.Float64("end-lat"), Lng: c.Float64("end-lng")}
				result, err = app.planner.Plan(from, to, destination, endLocation)
			} else {
				result, err = app.planner.PlanTo(from, to, destination)
			}
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Printf("%s -> %s\n", result.StartStation, result.EndStation)
			for i, step := range result.Steps {
				fmt.Printf("  %d. [%s] %s (%d min)\n", i+1, step.Type, step.Instruction, step.TimeMins)
			}
			fmt.Printf("Transit %d min + walk %d min (%dm) = %d min\n",
				result.TotalTransitMins, result.WalkTimeMins, result.WalkDistanceMeters, result.TotalTimeMins)
			return nil
		},
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the canonical station name for each argument",
		ArgsUsage: "<name>...",
		Action: func(c *cli.Context) error {
			app, err := loadCore()
			if err != nil {
				return err
			}

			topology := app.resolver.Topology()
			for _, raw := range c.Args().Slice() {
				name := app.resolver.Resolve(raw)
				lines := topology.LinesFor(name)
				if len(lines) == 0 {
					fmt.Printf("%q -> %q (unknown)\n", raw, name)
					continue
				}
				fmt.Printf("%q -> %q %v\n", raw, name, lines)
			}
			return nil
		},
	}
}
