// Command svg2excalidraw translates a rendered connectivity diagram into an
// Excalidraw scene document.
//
// Usage:
//
//	svg2excalidraw [flags] input.svg [output.excalidraw]
//
// With no output argument, or with "-", the scene is written to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dangunter/idaes-model-conn/internal/convert"
	"github.com/dangunter/idaes-model-conn/internal/models"
)

func main() {
	var (
		indent = flag.Int("indent", 0, "indent output JSON with this many spaces")
		seed   = flag.Int64("seed", 0, "seed for element id generation (0 = random)")
		styles = flag.String("styles", "", "path to a YAML style preset")
		quiet  = flag.Bool("q", false, "suppress progress messages")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.svg [output.excalidraw]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.New(os.Stderr, "", 0)
	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	inPath := flag.Arg(0)
	outPath := "-"
	if flag.NArg() == 2 {
		outPath = flag.Arg(1)
	}

	style := models.DefaultStyle()
	if *styles != "" {
		var err error
		style, err = convert.LoadStylePreset(*styles)
		if err != nil {
			logger.Fatalf("Failed to load style preset: %v", err)
		}
	}

	opts := []convert.Option{convert.WithStyle(style)}
	if *seed != 0 {
		opts = append(opts, convert.WithIDSource(convert.NewIDSource(*seed)))
	}

	in := os.Stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			logger.Fatalf("Failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	scene, err := convert.New(opts...).Translate(in)
	if err != nil {
		logger.Fatalf("Failed to translate %s: %v", inPath, err)
	}
	if !*quiet {
		logger.Printf("Translated %s: %d elements, %d embedded images", inPath, len(scene.Elements), len(scene.Files))
	}

	out := os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := scene.Encode(out, strings.Repeat(" ", *indent)); err != nil {
		logger.Fatalf("Failed to write scene: %v", err)
	}
	if !*quiet && outPath != "-" {
		logger.Printf("Wrote %s", outPath)
	}
}
