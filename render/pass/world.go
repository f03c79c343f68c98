package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/image"
)

const regionSize = 512

// BBox is an inclusive axis-aligned region-coordinate bounding box.
type BBox struct {
	MinX, MinZ, MaxX, MaxZ int
}

// Bounds computes the bounding box over every populated region. On an empty
// map it returns the zero BBox, a single region at (0, 0).
func Bounds(regions map[[2]int]*RegionScratch) BBox {
	first := true
	var b BBox
	for k := range regions {
		if first {
			b = BBox{MinX: k[0], MinZ: k[1], MaxX: k[0], MaxZ: k[1]}
			first = false
			continue
		}
		if k[0] < b.MinX {
			b.MinX = k[0]
		}
		if k[0] > b.MaxX {
			b.MaxX = k[0]
		}
		if k[1] < b.MinZ {
			b.MinZ = k[1]
		}
		if k[1] > b.MaxZ {
			b.MaxZ = k[1]
		}
	}
	return b
}

// Width and Height report the bounding box's size in pixels at 512px/region.
func (b BBox) Width() int  { return (b.MaxX - b.MinX + 1) * regionSize }
func (b BBox) Height() int { return (b.MaxZ - b.MinZ + 1) * regionSize }

// SaveWorld streams the stitched world image to path through the PNG
// writer, fetching a single region-width row slice from each region's
// scratch per output row.
func SaveWorld(path string, regions map[[2]int]*RegionScratch, comment string) error {
	b := Bounds(regions)
	w, h := b.Width(), b.Height()
	return image.Save(path, w, h, func(row int) []color.RGBA {
		rz := b.MinZ + row/regionSize
		localRow := row % regionSize
		out := make([]color.RGBA, w)
		for rx := b.MinX; rx <= b.MaxX; rx++ {
			col := (rx - b.MinX) * regionSize
			if r, ok := regions[[2]int{rx, rz}]; ok {
				for x := 0; x < regionSize; x++ {
					out[col+x] = r.Pixels[x][localRow]
				}
			}
		}
		return out
	}, comment)
}
