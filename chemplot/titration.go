/*
 * titration.go, part of gopqr.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chemplot

import (
	"fmt"
	"io"

	"github.com/rmera/gopqr/pka"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Label returns the legend entry for a titration.
func Label(t pka.Titration) string {
	if t.Patch == "" {
		return t.Residue
	}
	return fmt.Sprintf("%s %s", t.Residue, t.Patch)
}

func points(c []pka.Point) plotter.XYs {
	ret := make(plotter.XYs, len(c))
	for i, p := range c {
		ret[i].X = p.PH
		ret[i].Y = p.Charge
	}
	return ret
}

//Net returns the sum of the titration curves in tits. All curves must be
//sampled at the same pH values, curves that are not are left out. It
//returns nil if there are no curves.
func Net(tits []pka.Titration) []pka.Point {
	var ret []pka.Point
	var q []float64
	for _, t := range tits {
		if len(t.Curve) == 0 {
			continue
		}
		if ret == nil {
			ret = make([]pka.Point, len(t.Curve))
			q = make([]float64, len(t.Curve))
			for i, p := range t.Curve {
				ret[i].PH = p.PH
			}
		}
		if len(t.Curve) != len(ret) || t.Curve[0].PH != ret[0].PH {
			continue
		}
		c := make([]float64, len(t.Curve))
		for i, p := range t.Curve {
			c[i] = p.Charge
		}
		floats.Add(q, c)
	}
	for i := range ret {
		ret[i].Charge = q[i]
	}
	return ret
}

//TitrationPlot returns a plot with the titration curve of each site in tits,
//with its pKa marked, and, if there is more than one site, their sum.
func TitrationPlot(tits []pka.Titration, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "pH"
	p.Y.Label.Text = "Charge"
	p.Add(plotter.NewGrid())
	drawn := 0
	for k, t := range tits {
		if len(t.Curve) == 0 {
			continue
		}
		l, err := plotter.NewLine(points(t.Curve))
		if err != nil {
			return nil, fmt.Errorf("titration curve of %s: %w", Label(t), err)
		}
		col := hue(k, len(tits))
		l.LineStyle.Color = col
		l.LineStyle.Width = vg.Points(1)
		//the charge at the pKa is halfway between both ends of the curve
		mid := (t.Curve[0].Charge + t.Curve[len(t.Curve)-1].Charge) / 2
		s, err := plotter.NewScatter(plotter.XYs{{X: t.PKa, Y: mid}})
		if err != nil {
			return nil, fmt.Errorf("pKa of %s: %w", Label(t), err)
		}
		s.GlyphStyle.Color = col
		s.GlyphStyle.Shape = shape(drawn)
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(l, s)
		p.Legend.Add(Label(t), l, s)
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("no titration curves to plot")
	}
	if drawn > 1 {
		l, err := plotter.NewLine(points(Net(tits)))
		if err != nil {
			return nil, fmt.Errorf("net titration curve: %w", err)
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("Total", l)
	}
	p.Legend.Top = true
	return p, nil
}

//SaveTitrations writes the titration plot of tits to a file. The format
//is taken from the extension of the name. Sizes are in inches.
func SaveTitrations(tits []pka.Titration, title, name string, width, height float64) error {
	p, err := TitrationPlot(tits, title)
	if err != nil {
		return err
	}
	return p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, name)
}

//WriteTitrations writes the titration plot of tits to w in the given format
//("png", "svg", "pdf"...). Sizes are in inches.
func WriteTitrations(w io.Writer, tits []pka.Titration, title, format string, width, height float64) error {
	p, err := TitrationPlot(tits, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
