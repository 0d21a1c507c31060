package svghash

import (
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/livesvg/svgelem"
)

// Normalize returns the canonical form of an attribute value.
//
// Surrounding whitespace is dropped and runs of whitespace collapse
// to a single space. Every token that reads fully as a decimal number
// is rewritten in the shortest form that round-trips, so "1.0" and
// "1" normalize alike, as do "0 0 100.0 100" and "0 0 100 100".
// Anything else ("5px", "red") is kept verbatim.
func Normalize(v string) string {
	fields := strings.Fields(v)
	for i, f := range fields {
		fields[i] = normalizeToken(f)
	}
	return strings.Join(fields, " ")
}

func normalizeToken(tok string) string {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return tok
	}
	return svgelem.Ftoa(f)
}
