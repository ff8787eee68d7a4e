package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"BitwoodRPG/internal/content"
	"BitwoodRPG/internal/game"
)

func main() {
	smoke := flag.Duration("smoke", 0, "run headless for the given duration and exit (e.g., 2s)")
	flag.Parse()

	bundle, err := content.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "content failed validation: %v\n", err)
		os.Exit(1)
	}
	room, err := bundle.BuildRoom("console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build room: %v\n", err)
		os.Exit(1)
	}

	if *smoke > 0 {
		if err := runSmoke(room, *smoke); err != nil {
			fmt.Fprintf(os.Stderr, "smoke run failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(newConsoleUI(room), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}

// runSmoke steps the simulation without a terminal for a bounded stretch
// of simulated time, wandering to exercise collision, and prints a short
// summary. Useful as a boot check on headless machines.
func runSmoke(room *game.Room, d time.Duration) error {
	ticks := int(d.Seconds() * game.SimHz)
	if ticks < 1 {
		ticks = 1
	}
	for i := 0; i < ticks; i++ {
		var in game.Input
		switch (i / (2 * game.SimHz)) % 4 {
		case 0:
			in.Right = true
		case 1:
			in.Down = true
		case 2:
			in.Left = true
		case 3:
			in.Up = true
		}
		if err := room.Step(in, game.Dt); err != nil {
			return err
		}
	}

	pos := room.World.Transform(room.Player)
	flags := room.Flags.Snapshot()
	var set []string
	for name, on := range flags {
		if on {
			set = append(set, name)
		}
	}
	sort.Strings(set)
	fmt.Printf("smoke ok: %d ticks, t=%.2fs, mode=%s, player=(%.1f, %.1f), flags=[%s]\n",
		ticks, room.Now, room.Mode, pos.Pos.X, pos.Pos.Y, strings.Join(set, " "))
	return nil
}
