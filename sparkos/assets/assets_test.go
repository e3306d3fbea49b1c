package assets

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"sparkcraft/sparkos/voxel"
)

func TestBaseStrip(t *testing.T) {
	s := BaseStrip()
	if got, want := s.Bounds().Size(), image.Pt(voxel.TexSize*voxel.MaxBlockTypes, voxel.TexSize); got != want {
		t.Fatalf("BaseStrip size = %v, want %v", got, want)
	}
	if got := s.RGBAAt(3, 5); got != (color.RGBA{R: 255, G: 0, B: 255, A: 255}) {
		t.Fatalf("air tile = %v, want magenta", got)
	}
}

func TestBuildSpritesheetLayout(t *testing.T) {
	strip := BaseStrip()
	sheet, err := BuildSpritesheet(strip)
	if err != nil {
		t.Fatalf("BuildSpritesheet() err = %v", err)
	}
	cell := voxel.SheetTile
	if got, want := sheet.Bounds().Size(), image.Pt(cell*3, cell*voxel.MaxBlockTypes); got != want {
		t.Fatalf("sheet size = %v, want %v", got, want)
	}

	const typ = int(voxel.Dirt)
	for _, p := range []image.Point{{0, 0}, {5, 9}, {15, 15}} {
		src := strip.RGBAAt(typ*voxel.TexSize+p.X, p.Y)
		for ty := 0; ty < repeat; ty++ {
			for tx := 0; tx < repeat; tx++ {
				x := tx*voxel.TexSize + p.X
				y := typ*cell + ty*voxel.TexSize + p.Y
				if got := sheet.RGBAAt(x, y); got != src {
					t.Fatalf("full-bright (%d,%d) = %v, want %v", x, y, got, src)
				}
				dim := sheet.RGBAAt(2*cell+x, y)
				if want := scale8(src.G, 0.6); dim.G != want {
					t.Fatalf("0.6 column G = %d, want %d", dim.G, want)
				}
			}
		}
	}
}

func TestBuildSpritesheetResamples(t *testing.T) {
	strip := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			c := color.RGBA{R: 10, A: 255}
			if x >= 32 {
				c = color.RGBA{B: 200, A: 255}
			}
			strip.SetRGBA(x, y, c)
		}
	}
	sheet, err := BuildSpritesheet(strip)
	if err != nil {
		t.Fatalf("BuildSpritesheet() err = %v", err)
	}
	if got := sheet.Bounds().Dy(); got != 2*voxel.SheetTile {
		t.Fatalf("sheet height = %d, want %d", got, 2*voxel.SheetTile)
	}
	if got := sheet.RGBAAt(63, voxel.SheetTile+63); got.B != 200 {
		t.Fatalf("second row = %v, want blue tile", got)
	}
}

func TestBuildSpritesheetRejectsBadStrip(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 24, 16),
		image.Rect(0, 0, 16*(voxel.MaxBlockTypes+1), 16),
		image.Rect(0, 0, 0, 0),
	} {
		if _, err := BuildSpritesheet(image.NewRGBA(r)); !errors.Is(err, ErrBadStrip) {
			t.Fatalf("BuildSpritesheet(%v) err = %v, want ErrBadStrip", r, err)
		}
	}
}

func TestToTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, B: 255, A: 255})
	tex := ToTexture(img)
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d", tex.Width, tex.Height)
	}
	if tex.At(0, 0) != 0xF800 || tex.At(1, 0) != 0x07FF {
		t.Fatalf("texels = %#x %#x", tex.At(0, 0), tex.At(1, 0))
	}
}

func TestDefaultSpritesheetMatchesUVLayout(t *testing.T) {
	tex := DefaultSpritesheet()
	if tex.Width != 3*voxel.SheetTile || tex.Height != voxel.MaxBlockTypes*voxel.SheetTile {
		t.Fatalf("sheet = %dx%d", tex.Width, tex.Height)
	}
}
