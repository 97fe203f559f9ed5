package pnrviz

import (
	"bytes"
	"fmt"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/cgra-tools/pnr/layout"
)

// Options configures Render: a plain struct of display toggles, defaulted
// by zero value.
type Options struct {
	CellSize int    // pixels per board cell, default 32
	Margin   int    // pixels of canvas margin, default 20
	Title    string // optional header text
	ShowGrid bool   // draw cell gridlines
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = 32
	}
	if o.Margin <= 0 {
		o.Margin = 20
	}
	return o
}

// typeColor assigns a deterministic fill colour to a block-type character
// from a small fixed palette, so the same layout always renders
// identically.
func typeColor(t layout.Type) string {
	palette := []string{"#4299e1", "#48bb78", "#ed8936", "#9f7aea", "#f56565", "#ecc94b", "#38b2ac"}
	return palette[int(t)%len(palette)]
}

// Render draws the board's block-type layers, then every net's route (if
// routes is non-nil) as a polyline through its node coordinates, then every
// placed block as a labelled dot on its cell — in that back-to-front order
// so routes sit on top of the board and block labels on top of routes.
func Render(lo *layout.Layout, placements map[string][2]int, routes map[string][][2]int, opts Options) ([]byte, error) {
	if lo == nil || lo.Width <= 0 || lo.Height <= 0 {
		return nil, ErrEmptyLayout
	}
	opts = opts.withDefaults()

	headerH := 0
	if opts.Title != "" {
		headerH = 30
	}
	width := lo.Width*opts.CellSize + 2*opts.Margin
	height := lo.Height*opts.CellSize + 2*opts.Margin + headerH

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(width/2, 20, opts.Title, "text-anchor:middle;font-size:16px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	originY := opts.Margin + headerH
	cellXY := func(x, y int) (int, int) {
		return opts.Margin + x*opts.CellSize, originY + y*opts.CellSize
	}

	for x := 0; x < lo.Width; x++ {
		for y := 0; y < lo.Height; y++ {
			px, py := cellXY(x, y)
			t, err := lo.GetBlkType(x, y)
			fill := "#2d3748"
			if err == nil {
				fill = typeColor(t)
			}
			canvas.Rect(px, py, opts.CellSize, opts.CellSize, fmt.Sprintf("fill:%s;opacity:0.5", fill))
			if opts.ShowGrid {
				canvas.Rect(px, py, opts.CellSize, opts.CellSize, "fill:none;stroke:#4a5568;stroke-width:1")
			}
		}
	}

	if routes != nil {
		var netNames []string
		for name := range routes {
			netNames = append(netNames, name)
		}
		sort.Strings(netNames)
		for _, name := range netNames {
			path := routes[name]
			for i := 1; i < len(path); i++ {
				x0, y0 := cellXY(path[i-1][0], path[i-1][1])
				x1, y1 := cellXY(path[i][0], path[i][1])
				canvas.Line(
					x0+opts.CellSize/2, y0+opts.CellSize/2,
					x1+opts.CellSize/2, y1+opts.CellSize/2,
					"stroke:#f6e05e;stroke-width:2;opacity:0.8",
				)
			}
		}
	}

	var blockNames []string
	for name := range placements {
		blockNames = append(blockNames, name)
	}
	sort.Strings(blockNames)
	for _, name := range blockNames {
		pos := placements[name]
		px, py := cellXY(pos[0], pos[1])
		cx, cy := px+opts.CellSize/2, py+opts.CellSize/2
		canvas.Circle(cx, cy, opts.CellSize/3, "fill:#e2e8f0;stroke:#1a1a2e;stroke-width:1")
		canvas.Text(cx, cy+opts.CellSize, name, "text-anchor:middle;font-size:10px;font-family:monospace;fill:#e2e8f0")
	}

	canvas.End()
	return buf.Bytes(), nil
}
