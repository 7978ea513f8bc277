package mapproj

import (
	"math"
	"strconv"
	"strings"
)

// WKT returns a Well Known Text style dump of the projection parameters,
// for example
//
//	PARAM_MT["Mercator_1SP", PARAMETER["semi_major",6378137.0], ...]
//
// Only the parameters meaningful to the projection are listed, with the
// values it actually uses, defaults included.
func (p *Projection) WKT() string {
	var sb strings.Builder
	sb.WriteString(`PARAM_MT["`)
	sb.WriteString(p.provider.classification)
	sb.WriteString(`"`)
	for _, name := range p.provider.params {
		v, ok := p.effective[name]
		if !ok {
			continue
		}
		sb.WriteString(`, PARAMETER["`)
		sb.WriteString(name)
		sb.WriteString(`",`)
		sb.WriteString(formatWKTNumber(v))
		sb.WriteString(`]`)
	}
	sb.WriteString(`]`)
	return sb.String()
}

func formatWKTNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") && !math.IsInf(v, 0) && !math.IsNaN(v) {
		s += ".0"
	}
	return s
}
