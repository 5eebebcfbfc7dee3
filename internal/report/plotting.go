// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart dimensions.
const (
	Width  = 18 * vg.Centimeter
	Height = 15 * vg.Centimeter
)

// BarChart returns a bar chart of the fractions in the table with bars
// labeled by name and colored from the ColorBrewer Accent palette.
func BarChart(t Table, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Percentage"
	p.Y.Min = 0

	colors, err := accent(len(t))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(t))
	for i, f := range t {
		names[i] = f.Name
		bar, err := plotter.NewBarChart(plotter.Values{f.Fraction}, vg.Points(12))
		if err != nil {
			return nil, err
		}
		bar.XMin = float64(i)
		bar.Color = colors[i]
		bar.LineStyle.Width = 0
		p.Add(bar)
	}
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// accent returns n colors from the Accent palette, cycling the palette if
// n is greater than the number of palette colors.
func accent(n int) ([]color.Color, error) {
	if n == 0 {
		return nil, nil
	}
	pal, err := brewer.GetPalette(brewer.TypeAny, "Accent", 8)
	if err != nil {
		return nil, err
	}
	available := pal.Colors()
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = available[i%len(available)]
	}
	return colors, nil
}

// Save renders the plot as a standalone chart to the PNG file at path.
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}

// SavePanels renders the plots side by side as subplots of a single chart
// and writes it as a PNG to the file at path.
func SavePanels(plots []*plot.Plot, path string) (err error) {
	if len(plots) == 0 {
		return errors.New("report: no plots to render")
	}
	img := vgimg.New(vg.Length(len(plots))*Width, Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(plots),
		PadX: vg.Centimeter,
		PadY: vg.Centimeter / 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(f)
	return err
}
