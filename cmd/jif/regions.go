package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/halvorsen/jif/pkg/selector"
)

func handleRegions(args []string) int {
	fs := flag.NewFlagSet("regions", flag.ContinueOnError)
	del := fs.String("delete", "", "Delete a saved region")
	setDefault := fs.String("default", "", "Set a region as default")
	preview := fs.String("preview", "", "Write a PNG thumbnail of a saved region's current content")
	previewOut := fs.String("preview-out", "preview.png", "Output path for -preview")

	fs.Usage = func() {
		fmt.Println("Usage: jif regions [options]")
		fmt.Println("\nManage saved screen regions")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  jif regions                     # List all saved regions")
		fmt.Println("  jif regions -delete demo        # Delete 'demo' region")
		fmt.Println("  jif regions -default demo       # Set 'demo' as default")
		fmt.Println("  jif regions -preview demo        # Preview 'demo' as preview.png")
	}

	if err := fs.Parse(args); err != nil {
		return exitCaptureFailed
	}

	switch {
	case *del != "":
		if err := selector.DeleteRegion(*del); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitCaptureFailed
		}
		fmt.Printf("deleted region %q\n", *del)
		return exitOK

	case *setDefault != "":
		if err := selector.SetDefaultRegion(*setDefault); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitCaptureFailed
		}
		fmt.Printf("set %q as default region\n", *setDefault)
		return exitOK

	case *preview != "":
		if err := selector.PreviewRegion(*preview, *previewOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitCaptureFailed
		}
		fmt.Printf("wrote preview of %q to %s\n", *preview, *previewOut)
		return exitOK
	}

	names, err := selector.ListRegions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitCaptureFailed
	}

	if len(names) == 0 {
		fmt.Println("no saved regions")
		fmt.Println("\ncreate one with: jif select -name myregion")
		return exitOK
	}

	fmt.Println("saved regions:")
	for _, name := range names {
		info, err := selector.GetRegionInfo(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %s\n", info)
	}
	return exitOK
}
