package landcover

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ASCIIGrid is an ESRI ASCII raster in geographic (lat/lon) coordinates.
// Rows are stored north to south, as in the file.
type ASCIIGrid struct {
	ncols    int
	nrows    int
	xll      float64
	yll      float64
	cellsize float64
	nodata   float64
	data     []float64
}

// LoadASCIIGrid reads an ESRI ASCII grid (.asc) file. Callers treating the
// dataset as optional should map errors to an absent mask.
func LoadASCIIGrid(path string) (*ASCIIGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raster: %w", err)
	}
	defer f.Close()

	g := &ASCIIGrid{nodata: -9999}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	headerDone := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if !headerDone {
			key := strings.ToLower(fields[0])
			switch key {
			case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
				if len(fields) != 2 {
					return nil, fmt.Errorf("malformed header line %q", line)
				}
				v, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("malformed header value in %q", line)
				}
				switch key {
				case "ncols":
					g.ncols = int(v)
				case "nrows":
					g.nrows = int(v)
				case "xllcorner":
					g.xll = v
				case "yllcorner":
					g.yll = v
				case "cellsize":
					g.cellsize = v
				case "nodata_value":
					g.nodata = v
				}
				continue
			default:
				headerDone = true
			}
		}
		for _, fstr := range fields {
			v, err := strconv.ParseFloat(fstr, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed raster value %q", fstr)
			}
			g.data = append(g.data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading raster: %w", err)
	}
	if g.ncols <= 0 || g.nrows <= 0 || g.cellsize <= 0 {
		return nil, fmt.Errorf("raster header incomplete (ncols=%d nrows=%d cellsize=%g)", g.ncols, g.nrows, g.cellsize)
	}
	if len(g.data) != g.ncols*g.nrows {
		return nil, fmt.Errorf("raster has %d values, want %d", len(g.data), g.ncols*g.nrows)
	}
	return g, nil
}

// Sample implements Sampler by nearest-cell lookup.
func (g *ASCIIGrid) Sample(lat, lon float64) (float64, bool) {
	col := int((lon - g.xll) / g.cellsize)
	rowFromBottom := int((lat - g.yll) / g.cellsize)
	if col < 0 || col >= g.ncols || rowFromBottom < 0 || rowFromBottom >= g.nrows {
		return 0, false
	}
	row := g.nrows - 1 - rowFromBottom
	v := g.data[row*g.ncols+col]
	if v == g.nodata {
		return 0, false
	}
	return v, true
}

// OpenSampler loads a raster as a Sampler, degrading to nil when the path is
// empty or the file is missing or malformed.
func OpenSampler(path string) Sampler {
	if path == "" {
		return nil
	}
	g, err := LoadASCIIGrid(path)
	if err != nil {
		return nil
	}
	return g
}
