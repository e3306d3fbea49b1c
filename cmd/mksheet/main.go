// Command mksheet builds the block spritesheet from a strip of 16x16 tiles.
//
// With no -in it writes the built-in procedural strip instead.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"sparkcraft/sparkos/assets"
)

func main() {
	var (
		inPath    = flag.String("in", "", "Input PNG strip, one 16x16 tile per block type (default: built-in strip).")
		outPath   = flag.String("out", "", "Output spritesheet PNG.")
		stripPath = flag.String("strip", "", "Also write the input strip to this PNG.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mksheet [-in blocks.png] -out spritesheet.png [-strip strip.png]")
	}
	if err := run(*inPath, *outPath, *stripPath); err != nil {
		fatalf("mksheet: %v", err)
	}
}

func run(inPath, outPath, stripPath string) error {
	var strip image.Image = assets.BaseStrip()
	if inPath != "" {
		var err error
		if strip, err = assets.LoadStrip(inPath); err != nil {
			return err
		}
	}
	if stripPath != "" {
		if err := assets.SavePNG(stripPath, strip); err != nil {
			return err
		}
	}
	sheet, err := assets.BuildSpritesheet(strip)
	if err != nil {
		return fmt.Errorf("build sheet: %w", err)
	}
	return assets.SavePNG(outPath, sheet)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
