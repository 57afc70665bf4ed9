package mapfile

import (
	"encoding/binary"
	"fmt"

	"github.com/Kruzntat/Hostile-OpenRA-For-TAKX/pkg/tiles"
)

const (
	tileFormat = 2
	headerLen  = 17

	// Dimensions ride in u16 header fields.
	maxGridSide = 65535
)

// EncodedLen returns the exact byte length Encode produces for a w×h grid.
// The layout is fully determined by the dimensions and the heights flag.
func EncodedLen(w, h int, includeHeights bool) int {
	n := headerLen + 3*w*h + 2*w*h
	if includeHeights {
		n += w * h
	}
	return n
}

// Encode serializes the grid into the map.bin layout: a 17-byte header,
// x-major (u16 template, byte variant) tiles, an optional all-zero heights
// layer, and an all-zero (type, density) resource pair per cell.
func Encode(g *tiles.Grid, includeHeights bool) ([]byte, error) {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 || w > maxGridSide || h > maxGridSide {
		return nil, fmt.Errorf("grid dimensions %dx%d out of range [1, %d]", w, h, maxGridSide)
	}

	out := make([]byte, 0, EncodedLen(w, h, includeHeights))
	out = append(out, tileFormat)
	out = binary.LittleEndian.AppendUint16(out, uint16(w))
	out = binary.LittleEndian.AppendUint16(out, uint16(h))
	out = binary.LittleEndian.AppendUint32(out, headerLen)

	heightsOffset := uint32(0)
	resourcesOffset := uint32(3*w*h + headerLen)
	if includeHeights {
		heightsOffset = uint32(3*w*h + headerLen)
		resourcesOffset = uint32(4*w*h + headerLen)
	}
	out = binary.LittleEndian.AppendUint32(out, heightsOffset)
	out = binary.LittleEndian.AppendUint32(out, resourcesOffset)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			out = binary.LittleEndian.AppendUint16(out, g.Get(x, y))
			out = append(out, g.Variant(x, y))
		}
	}

	if includeHeights {
		out = append(out, make([]byte, w*h)...)
	}
	out = append(out, make([]byte, 2*w*h)...)
	return out, nil
}
