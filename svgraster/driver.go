package svgraster

import (
	"github.com/srwiley/rasterx"
)

// painter pairs the two rasterx primitives: a filler for fills, a
// dasher for strokes. Separate instances avoid shared path state.
type painter struct {
	dasher *rasterx.Dasher
	filler *rasterx.Filler
}

func newPainter(width, height int, scanner rasterx.Scanner) *painter {
	return &painter{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		Round:     rasterx.Round,
		Bevel:     rasterx.Bevel,
		Miter:     rasterx.Miter,
		MiterClip: rasterx.MiterClip,
		Arc:       rasterx.Arc,
		ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		ButtCap:      rasterx.ButtCap,
		SquareCap:    rasterx.SquareCap,
		RoundCap:     rasterx.RoundCap,
		CubicCap:     rasterx.CubicCap,
		QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		FlatGap:      rasterx.FlatGap,
		RoundGap:     rasterx.RoundGap,
		CubicGap:     rasterx.CubicGap,
		QuadraticGap: rasterx.QuadraticGap,
	}
)

// setStroke configures the dasher from the style. Widths and dashes
// are given in user space and scaled to device space here.
func (p *painter) setStroke(st *pathStyle) {
	lineGap := st.join.LineGap
	if lineGap == NilGap {
		lineGap = defaultStyle.join.LineGap
	}
	lineCap := st.join.TrailLineCap
	if lineCap == NilCap {
		lineCap = defaultStyle.join.TrailLineCap
	}
	leadLineCap := lineCap
	if st.join.LeadLineCap != NilCap {
		leadLineCap = st.join.LeadLineCap
	}
	scale := st.transform.meanScale()
	var dash []float64
	if len(st.dash.Dash) != 0 {
		dash = make([]float64, len(st.dash.Dash))
		for i, d := range st.dash.Dash {
			dash[i] = d * scale
		}
	}
	p.dasher.SetStroke(
		fToFixed(st.lineWidth*scale), st.join.MiterLimit, capToFunc[leadLineCap],
		capToFunc[lineCap], gapToFunc[lineGap], joinToJoin[st.join.LineJoin],
		dash, st.dash.DashOffset*scale,
	)
}
