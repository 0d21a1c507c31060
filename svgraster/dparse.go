package svgraster

import (
	"strconv"
)

// compilePath appends the operations described by a path d attribute.
// Only the absolute commands M, L, H, V, Q, C and Z are drawn, the
// vocabulary the figure presets emit; any other command is reported
// through the error mode and parsing stops there.
func (c *cursor) compilePath(d string) error {
	pp := pathParser{toks: tokenizePath(d)}
	var x, y, startX, startY float64
	for {
		cmd, ok := pp.next()
		if !ok {
			return nil
		}
		switch cmd {
		case "M":
			if !pp.peekNumber() {
				return errParamMismatch
			}
			for first := true; pp.peekNumber(); first = false {
				px, py, err := pp.pair()
				if err != nil {
					return err
				}
				if first {
					c.path.Start(px, py)
					startX, startY = px, py
				} else {
					// extra pairs are implicit line commands
					c.path.Line(px, py)
				}
				x, y = px, py
			}
		case "L":
			if !pp.peekNumber() {
				return errParamMismatch
			}
			for pp.peekNumber() {
				px, py, err := pp.pair()
				if err != nil {
					return err
				}
				c.path.Line(px, py)
				x, y = px, py
			}
		case "H":
			if !pp.peekNumber() {
				return errParamMismatch
			}
			for pp.peekNumber() {
				px, err := pp.number()
				if err != nil {
					return err
				}
				c.path.Line(px, y)
				x = px
			}
		case "V":
			if !pp.peekNumber() {
				return errParamMismatch
			}
			for pp.peekNumber() {
				py, err := pp.number()
				if err != nil {
					return err
				}
				c.path.Line(x, py)
				y = py
			}
		case "Q":
			if !pp.peekNumber() {
				return errParamMismatch
			}
			for pp.peekNumber() {
				cx, cy, err := pp.pair()
				if err != nil {
					return err
				}
				px, py, err := pp.pair()
				if err != nil {
					return err
				}
				c.path.QuadBezier(cx, cy, px, py)
				x, y = px, py
			}
		case "C":
			if !pp.peekNumber() {
				return errParamMismatch
			}
			for pp.peekNumber() {
				c1x, c1y, err := pp.pair()
				if err != nil {
					return err
				}
				c2x, c2y, err := pp.pair()
				if err != nil {
					return err
				}
				px, py, err := pp.pair()
				if err != nil {
					return err
				}
				c.path.CubeBezier(c1x, c1y, c2x, c2y, px, py)
				x, y = px, py
			}
		case "Z":
			c.path.Stop(true)
			x, y = startX, startY
		default:
			if b := cmd[0]; (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') {
				return c.handleError("unsupported path command %q", cmd)
			}
			return errParamMismatch
		}
	}
}

type pathParser struct {
	toks []string
	pos  int
}

func (pp *pathParser) next() (string, bool) {
	if pp.pos >= len(pp.toks) {
		return "", false
	}
	t := pp.toks[pp.pos]
	pp.pos++
	return t, true
}

func (pp *pathParser) peekNumber() bool {
	if pp.pos >= len(pp.toks) {
		return false
	}
	b := pp.toks[pp.pos][0]
	return b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9')
}

func (pp *pathParser) number() (float64, error) {
	t, ok := pp.next()
	if !ok {
		return 0, errParamMismatch
	}
	return strconv.ParseFloat(t, 64)
}

func (pp *pathParser) pair() (x, y float64, err error) {
	if x, err = pp.number(); err != nil {
		return
	}
	y, err = pp.number()
	return
}

// tokenizePath splits a d attribute into command letters and number
// literals. Commas and blanks separate; a sign also starts a new
// number, except right after an exponent marker.
func tokenizePath(d string) []string {
	var toks []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, d[start:end])
			start = -1
		}
	}
	for i := 0; i < len(d); i++ {
		switch b := d[i]; {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ',':
			flush(i)
		case b == '+' || b == '-':
			if start >= 0 && (d[i-1] == 'e' || d[i-1] == 'E') {
				continue
			}
			flush(i)
			start = i
		case b == 'e' || b == 'E':
			if start >= 0 {
				continue // exponent, part of the number
			}
			toks = append(toks, string(b))
		case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z'):
			flush(i)
			toks = append(toks, string(b))
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(d))
	return toks
}
