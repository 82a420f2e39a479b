package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/halvorsen/jif/pkg/capture"
	"github.com/halvorsen/jif/pkg/selector"
)

func handleSelect(args []string) int {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	name := fs.String("name", "", "Save the selected region with a name")
	setDefault := fs.Bool("default", false, "Set this region as the default")

	fs.Usage = func() {
		fmt.Println("Usage: jif select [options]")
		fmt.Println("\nLaunch an interactive region selector")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitCaptureFailed
	}

	sel, err := selector.NewSelector()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCaptureFailed
	}

	var rect *capture.Rect
	if *name != "" {
		rect, err = sel.SelectWithName(*name)
	} else {
		rect, err = sel.Select()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCaptureFailed
	}

	if *setDefault && *name != "" {
		if err := selector.SetDefaultRegion(*name); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to set default region: %v\n", err)
		} else {
			fmt.Printf("set %q as default region\n", *name)
		}
	}

	if *name == "" {
		x, y, w, h := rect.Rounded()
		fmt.Println("\nTo use this region in capture:")
		fmt.Printf("  jif -r %dx%d -c %dx%d\n", w, h, x, y)
		fmt.Println("\nOr save it for later use:")
		fmt.Println("  jif select -name myregion")
	}
	return exitOK
}
