/*
 * colors.go, part of gopqr.
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
	"image/color"
	"math"

	"gonum.org/v1/plot/vg/draw"
)

//hsv2rgb takes a hue (0-360), and a value and saturation (0-1), and returns
//the corresponding opaque color.
func hsv2rgb(h, v, s float64) color.RGBA {
	c := func(f float64) uint8 { return uint8(math.Round(255 * f)) }
	if s == 0 {
		return color.RGBA{R: c(v), G: c(v), B: c(v), A: 255}
	}
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: c(r), G: c(g), B: c(b), A: 255}
}

//hue returns the color for the key-th of steps series. Hues go from red
//to violet, skipping the yellows, which are hard to see on white.
func hue(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	hp := float64(key)*260/float64(steps) + 20
	h := hp - 20
	if hp >= 55 {
		h = hp + 20
	}
	return hsv2rgb(h, 1, 1)
}

//shape returns the glyph for the n-th tagged point.
func shape(n int) draw.GlyphDrawer {
	switch n % 5 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.PyramidGlyph{}
	case 2:
		return draw.SquareGlyph{}
	case 3:
		return draw.BoxGlyph{}
	}
	return draw.TriangleGlyph{}
}
