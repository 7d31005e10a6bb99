package cmd

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/VladimirMarkelov/pwatch/config"
	"github.com/VladimirMarkelov/pwatch/ui"
)

// Version is set at build time via ldflags.
var Version = "0.5.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `pwatch v%s — CPU and memory usage graphs for selected processes

Usage:
  pwatch [OPTIONS] NAME|PID[,PID...]

Target:
  NAME              Watch every process whose "exe name" matches NAME
                    (case-insensitive substring, or a regular expression)
  PID[,PID...]      Watch the given process IDs only

Options:
  -quality LEVEL    Graph quality: low, medium, high (default: from config)
  -refresh MS       Refresh interval in milliseconds, 250..10000
  -pack MODE        Graph packing: auto, line, side
  -graphs SET       Graphs to show: all, cpu, mem
  -title MODE       Panel title source: cmd, exe, name
  -scale-max        Scale memory graphs to the all-time maximum
  -version          Print version and exit

Keys:
  Up/Down/PgUp/PgDn/Home/End   Scroll panels
  SPACE             Mark: show deltas since the mark
  r                 Reset per-panel maximums
  F1                Help bar      F2   Save screenshot
  F6                Cycle graphs  F7   Cycle quality
  F8                Remove dead   F9   Cycle titles
  F12               Toggle max scaling
  q, ESC            Quit

Examples:
  pwatch firefox                 Watch all firefox processes
  pwatch 1,1024                  Watch PIDs 1 and 1024
  pwatch -refresh 500 -pack side postgres
`, Version)
}

// Run parses flags, merges them over the config file, and starts the TUI.
func Run() error {
	cfg := config.Load()

	var showVersion bool
	flag.StringVar(&cfg.Quality, "quality", cfg.Quality, "Graph quality (low, medium, high)")
	flag.IntVar(&cfg.RefreshMs, "refresh", cfg.RefreshMs, "Refresh interval in milliseconds")
	flag.StringVar(&cfg.Pack, "pack", cfg.Pack, "Graph packing (auto, line, side)")
	flag.StringVar(&cfg.Graphs, "graphs", cfg.Graphs, "Graphs to show (all, cpu, mem)")
	flag.StringVar(&cfg.Title, "title", cfg.Title, "Panel title source (cmd, exe, name)")
	flag.BoolVar(&cfg.ScaleMax, "scale-max", cfg.ScaleMax, "Scale memory graphs to the all-time maximum")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("pwatch v%s\n", Version)
		return nil
	}

	args := flag.Args()
	if len(args) != 1 {
		printUsage()
		os.Exit(1)
	}

	// Flags set explicitly on the command line win over later config reloads.
	flagged := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flagged[f.Name] = true })

	opts := cfg.Options()
	if err := config.ParseTarget(args[0], &opts); err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("pwatch requires a terminal")
	}

	done := make(chan struct{})
	defer close(done)
	reload, err := config.Watch(config.Path(), done)
	if err != nil {
		reload = nil // no live reload, not fatal
	}

	p := tea.NewProgram(ui.New(opts, flagged, reload), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
