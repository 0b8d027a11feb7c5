package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/simonhull/musicxml/internal/document"
	"github.com/simonhull/musicxml/internal/registry"
	"github.com/simonhull/musicxml/internal/types"

	_ "github.com/simonhull/musicxml/internal/mxl"
	_ "github.com/simonhull/musicxml/internal/uncompressed"
)

// Useful to confirm which elements and attributes a score actually carries.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: mxl-dump <file.mxl|file.musicxml>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	format, err := types.DetectFormat(f, stat.Size(), f.Name())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	loaded, err := registry.Get(format).Load(f, stat.Size(), f.Name(), registry.LoadConfig{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if loaded.RootFile != "" {
		fmt.Printf("# root file: %s\n", loaded.RootFile)
	}
	for _, w := range loaded.Warnings {
		fmt.Printf("# warning: %s\n", w)
	}

	dumpTree(loaded.Root)
}

func dumpTree(root *document.Node) {
	root.Walk(func(n *document.Node, depth int) {
		indent := strings.Repeat("  ", depth)

		var attrs strings.Builder
		for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
			fmt.Fprintf(&attrs, " %s=%q", k, n.Attrs[k])
		}

		text := strings.TrimSpace(n.Text())
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		if text != "" {
			fmt.Printf("%s%s%s: %s\n", indent, n.Name, attrs.String(), text)
			return
		}
		fmt.Printf("%s%s%s\n", indent, n.Name, attrs.String())
	})
}
