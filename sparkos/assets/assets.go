// Package assets builds block textures and the spritesheet the voxel
// renderer samples.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"sparkcraft/sparkos/quarkgl"
	"sparkcraft/sparkos/voxel"
)

// ErrBadStrip reports a texture strip whose size does not describe a row of
// square tiles.
var ErrBadStrip = errors.New("assets: bad texture strip")

// Shades holds the brightness of the sheet columns, one per face axis.
var Shades = [3]float64{1.0, 0.8, 0.6}

const repeat = voxel.MaxGreedLimit

// BaseStrip returns a procedural row of TexSize tiles, one per block type.
func BaseStrip() *image.RGBA {
	ts := voxel.TexSize
	img := image.NewRGBA(image.Rect(0, 0, ts*voxel.MaxBlockTypes, ts))
	for t := 0; t < voxel.MaxBlockTypes; t++ {
		base := quarkgl.ColorFromRGB565(voxel.Colorsheet[t][1])
		for y := 0; y < ts; y++ {
			for x := 0; x < ts; x++ {
				c := base
				if t != int(voxel.Air) {
					c = c.Scale(grain(t, x, y))
				}
				img.SetRGBA(t*ts+x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
			}
		}
	}
	return img
}

// grain is a deterministic per-texel brightness in [0.75, 1].
func grain(t, x, y int) quarkgl.Scalar {
	h := uint32(t*7919+x*131+y*31) * 2654435761
	h ^= h >> 16
	return quarkgl.One - quarkgl.Scalar(h%(1<<14))
}

// BuildSpritesheet lays out a strip of square tiles as a sheet with one row per
// block type. Each row repeats the tile repeat x repeat times in three columns
// of decreasing brightness. Tiles of any size are resampled to TexSize.
func BuildSpritesheet(strip image.Image) (*image.RGBA, error) {
	b := strip.Bounds()
	ts := b.Dy()
	if ts <= 0 || b.Dx()%ts != 0 {
		return nil, fmt.Errorf("assets: strip %dx%d: %w", b.Dx(), b.Dy(), ErrBadStrip)
	}
	n := b.Dx() / ts
	if n > voxel.MaxBlockTypes {
		return nil, fmt.Errorf("assets: strip has %d tiles, max %d: %w", n, voxel.MaxBlockTypes, ErrBadStrip)
	}

	cell := voxel.SheetTile
	sheet := image.NewRGBA(image.Rect(0, 0, cell*len(Shades), cell*n))
	tile := image.NewRGBA(image.Rect(0, 0, voxel.TexSize, voxel.TexSize))
	for i := 0; i < n; i++ {
		src := image.Rect(b.Min.X+i*ts, b.Min.Y, b.Min.X+(i+1)*ts, b.Max.Y)
		draw.NearestNeighbor.Scale(tile, tile.Bounds(), strip, src, draw.Src, nil)
		for col, shade := range Shades {
			shaded := brighten(tile, shade)
			for ty := 0; ty < repeat; ty++ {
				for tx := 0; tx < repeat; tx++ {
					at := image.Pt(col*cell+tx*voxel.TexSize, i*cell+ty*voxel.TexSize)
					draw.Draw(sheet, image.Rectangle{Min: at, Max: at.Add(shaded.Bounds().Size())}, shaded, image.Point{}, draw.Src)
				}
			}
		}
	}
	return sheet, nil
}

func brighten(src *image.RGBA, f float64) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	for i := 0; i+3 < len(src.Pix); i += 4 {
		out.Pix[i+0] = scale8(src.Pix[i+0], f)
		out.Pix[i+1] = scale8(src.Pix[i+1], f)
		out.Pix[i+2] = scale8(src.Pix[i+2], f)
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

func scale8(v uint8, f float64) uint8 {
	s := float64(v)*f + 0.5
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// ToTexture converts img to an RGB565 texture.
func ToTexture(img image.Image) *quarkgl.Texture {
	b := img.Bounds()
	tex := &quarkgl.Texture{Width: b.Dx(), Height: b.Dy(), Bitmap: make([]uint16, b.Dx()*b.Dy())}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			tex.Bitmap[y*tex.Width+x] = quarkgl.RGB565From888(c.R, c.G, c.B)
		}
	}
	return tex
}

// DefaultSpritesheet builds the sheet texture from BaseStrip.
func DefaultSpritesheet() *quarkgl.Texture {
	sheet, err := BuildSpritesheet(BaseStrip())
	if err != nil {
		panic(err)
	}
	return ToTexture(sheet)
}
