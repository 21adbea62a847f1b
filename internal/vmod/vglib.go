package vmod

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jcorbin/vyne/internal/strpool"
	"github.com/jcorbin/vyne/internal/symtab"
	"github.com/jcorbin/vyne/internal/value"
)

// SetupVGLib registers the demo graphics module.
func (h *Host) SetupVGLib(env *symtab.Container, pool *strpool.Pool) error {
	vglib := moduleTable(env, "vglib")

	define(vglib, pool, "donut", value.Native(h.donut))
	defineConst(vglib, pool, "version", value.Str(Version))

	return nil
}

// donut renders one frame of the classic spinning torus at rotation
// angles A and B, home-cursoring the terminal between frames.
func (h *Host) donut(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.Null(), errors.New("vglib.donut() requires A and B arguments")
	}

	const (
		width   = 80
		height  = 22
		area    = 1760 // width * height
		shading = ".,-~:;=!*#$@"
	)

	a := args[0].Num()
	b := args[1].Num()

	z := make([]float64, area)
	frame := make([]byte, area)
	for i := range frame {
		frame[i] = ' '
	}

	sinA, cosA := math.Sin(a), math.Cos(a)
	sinB, cosB := math.Sin(b), math.Cos(b)

	for j := 0.0; j < 6.28; j += 0.07 {
		ct, st := math.Cos(j), math.Sin(j)
		for i := 0.0; i < 6.28; i += 0.02 {
			sp, cp := math.Sin(i), math.Cos(i)
			ring := ct + 2
			depth := 1 / (sp*ring*sinA + st*cosA + 5)
			t := sp*ring*cosA - st*sinA

			x := int(40 + 30*depth*(cp*ring*cosB-t*sinB))
			y := int(12 + 15*depth*(cp*ring*sinB+t*cosB))
			o := x + width*y
			lum := int(8 * ((st*sinA-sp*ct*cosA)*cosB - sp*ct*sinA - st*cosA - cp*ct*sinB))

			if y > 0 && y < height && x > 0 && x < width && depth > z[o] {
				z[o] = depth
				shade := 0
				if lum > 0 {
					shade = lum
					if shade >= len(shading) {
						shade = len(shading) - 1
					}
				}
				frame[o] = shading[shade]
			}
		}
	}

	out := make([]byte, 0, area+height)
	for j := 0; j < height; j++ {
		out = append(out, frame[j*width:(j+1)*width]...)
		out = append(out, '\n')
	}

	if _, err := h.Out.Write([]byte("\x1b[H\x1b[?25l\x1b[J")); err != nil {
		return value.Null(), err
	}
	if _, err := h.Out.Write(out); err != nil {
		return value.Null(), err
	}
	return value.Null(), h.Out.Flush()
}
