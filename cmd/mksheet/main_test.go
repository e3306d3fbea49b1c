package main

import (
	"path/filepath"
	"testing"

	"sparkcraft/sparkos/assets"
	"sparkcraft/sparkos/voxel"
)

func TestRunRoundTripsStrip(t *testing.T) {
	dir := t.TempDir()
	stripPath := filepath.Join(dir, "strip.png")
	outPath := filepath.Join(dir, "sheet.png")
	if err := run("", outPath, stripPath); err != nil {
		t.Fatalf("run() err = %v", err)
	}

	again := filepath.Join(dir, "again.png")
	if err := run(stripPath, again, ""); err != nil {
		t.Fatalf("run(strip) err = %v", err)
	}
	sheet, err := assets.LoadStrip(again)
	if err != nil {
		t.Fatalf("LoadStrip() err = %v", err)
	}
	b := sheet.Bounds()
	if b.Dx() != voxel.SheetTile*len(assets.Shades) || b.Dy()%voxel.SheetTile != 0 {
		t.Fatalf("sheet size = %dx%d", b.Dx(), b.Dy())
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	if err := run(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.png"), ""); err == nil {
		t.Fatal("run() err = nil, want error")
	}
}
