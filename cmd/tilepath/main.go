// Command tilepath loads a YAML scenario and runs its path queries.
//
//	tilepath -scenario warehouse.yaml [-corners cosmetic|blocked] [-max 0] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/katalvlaran/tilepath/internal/scenario"
	"github.com/katalvlaran/tilepath/pathfind"
	"github.com/katalvlaran/tilepath/resindex"
	"github.com/katalvlaran/tilepath/tilegraph"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tilepath:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tilepath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("scenario", "", "path to the scenario YAML file")
	corners := fs.String("corners", pathfind.CornerCosmetic.String(), "corner clipping rule: cosmetic or blocked")
	maxExp := fs.Int("max", 0, "maximum nodes expanded per query (0 = unlimited)")
	verbose := fs.Bool("v", false, "log graph builds and search summaries")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("missing -scenario")
	}
	rule, ok := pathfind.ParseCornerRule(*corners)
	if !ok {
		return fmt.Errorf("unknown corner rule %q", *corners)
	}
	if *maxExp < 0 {
		return fmt.Errorf("-max must be non-negative, got %d", *maxExp)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sc, err := scenario.Load(*path)
	if err != nil {
		return err
	}
	m, err := sc.Map()
	if err != nil {
		return err
	}
	reqs, err := sc.Requests(m)
	if err != nil {
		return err
	}

	idx := resindex.Build(m)
	p := pathfind.NewPlanner(m,
		pathfind.WithLogger(logger),
		pathfind.WithCornerRule(rule),
		pathfind.WithMaxExpansions(*maxExp),
		pathfind.WithResourceIndex(idx),
	)

	g, err := p.Graph()
	if err != nil {
		return err
	}
	labels, regions := g.Regions()
	walls := 0
	for _, l := range labels {
		if l == tilegraph.NoRegion {
			walls++
		}
	}
	fmt.Fprintf(stdout, "map %dx%d: %d regions, %d impassable, %d stacks (%s)\n",
		m.Width(), m.Height(), regions, walls, idx.Len(), strings.Join(idx.Types(), ", "))

	for _, nr := range reqs {
		res, err := p.Calculate(nr.Request)
		if err != nil {
			return fmt.Errorf("%s: %w", nr.Name, err)
		}
		if !res.Reachable {
			note := ""
			if res.Truncated {
				note = " (search capped)"
			}
			fmt.Fprintf(stdout, "%s: unreachable after %d expansions%s\n", nr.Name, res.Expanded, note)
			continue
		}
		fmt.Fprintf(stdout, "%s: %d steps, cost %.3f, route %v\n",
			nr.Name, res.Route.Len(), res.Cost, res.Route.Coords())
	}
	return nil
}
