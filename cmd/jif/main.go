// Command jif captures a screen region and saves it as an animated GIF.
// It extends the teacher's witness command-dispatch shape: a flat
// per-command flag.NewFlagSet plus a hand-written printUsage, with the
// default (no subcommand) action being the capture+encode pipeline
// itself rather than a subcommand of its own.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

const (
	exitOK = iota
	exitBadResolution
	exitBadDuration
	exitBadCoordinate
	exitCaptureFailed
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitOK
	}

	switch args[0] {
	case "select":
		return handleSelect(args[1:])
	case "regions":
		return handleRegions(args[1:])
	case "help", "--help", "-h":
		printUsage()
		return exitOK
	case "version", "--version", "-v":
		fmt.Printf("jif version %s\n", version)
		return exitOK
	default:
		return handleCapture(args)
	}
}

func printUsage() {
	fmt.Print(`jif - screen capture to animated GIF
Version: ` + version + `

Usage: jif [-r WxH] [-d SECONDS] [-o PATH] [-c XxY]
       jif <command> [options]

Commands:
  select     Launch an interactive region selector
  regions    Manage saved regions (list, delete, set default, preview)
  help       Show this help message
  version    Show version information

Capture flags (default action, no subcommand):
  -r WxH       Capture resolution, e.g. 800x600 (required unless -region)
  -d SECONDS   Capture duration in seconds (required)
  -o PATH      Output GIF path (default: a timestamped filename)
  -c XxY       Top-left capture coordinate, e.g. 0x0 (default 0x0)
  -region NAME Use a saved region by name instead of -r/-c

Examples:
  jif -r 800x600 -d 5 -o demo.gif
  jif -region demo -d 10
  jif select -name demo -default
  jif regions -preview demo
`)
}
