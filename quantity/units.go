package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// symbol is a named unit: a scale to SI and the exponents of the SI base dimensions
type symbol struct {
	scale                       float64
	length, mass, time, temp, n int
}

func (s symbol) unit() *unit.Unit {
	d := unit.Dimensions{}
	for dim, p := range map[unit.Dimension]int{
		unit.LengthDim:      s.length,
		unit.MassDim:        s.mass,
		unit.TimeDim:        s.time,
		unit.TemperatureDim: s.temp,
		unit.MoleDim:        s.n,
	} {
		if p != 0 {
			d[dim] = p
		}
	}
	return unit.New(s.scale, d)
}

var (
	pascal = symbol{scale: 1, length: -1, mass: 1, time: -2}
	joule  = symbol{scale: 1, length: 2, mass: 1, time: -2}
	watt   = symbol{scale: 1, length: 2, mass: 1, time: -3}
)

func scaled(s symbol, f float64) symbol {
	s.scale *= f
	return s
}

// Symbols recognised in unit expressions. Angles and ratios are dimensionless.
var symbols = map[string]symbol{
	"1":   {scale: 1},
	"rad": {scale: 1},
	"%":   {scale: 0.01},

	"m":  {scale: 1, length: 1},
	"km": {scale: 1e3, length: 1},
	"cm": {scale: 1e-2, length: 1},
	"mm": {scale: 1e-3, length: 1},
	"um": {scale: 1e-6, length: 1},
	"µm": {scale: 1e-6, length: 1},
	"in": {scale: 0.0254, length: 1},
	"ft": {scale: 0.3048, length: 1},
	"l":  {scale: 1e-3, length: 3},
	"L":  {scale: 1e-3, length: 3},

	"kg": {scale: 1, mass: 1},
	"g":  {scale: 1e-3, mass: 1},
	"mg": {scale: 1e-6, mass: 1},

	"s":   {scale: 1, time: 1},
	"ms":  {scale: 1e-3, time: 1},
	"min": {scale: 60, time: 1},
	"h":   {scale: 3600, time: 1},

	"K": {scale: 1, temp: 1},

	"mol":  {scale: 1, n: 1},
	"kmol": {scale: 1e3, n: 1},

	"N":   {scale: 1, length: 1, mass: 1, time: -2},
	"Pa":  pascal,
	"kPa": scaled(pascal, 1e3),
	"MPa": scaled(pascal, 1e6),
	"bar": scaled(pascal, 1e5),
	"J":   joule,
	"kJ":  scaled(joule, 1e3),
	"W":   watt,
	"kW":  scaled(watt, 1e3),
}

// ParseUnit evaluates a unit expression such as "kg/m^3", "J/kg/K" or "m^2/s^2".
// Factors are separated by '*', '/' or spaces; '/' divides by the single factor that follows it.
// The empty expression is dimensionless.
func ParseUnit(expr string) (u *unit.Unit, err error) {
	var (
		tokens []string
		tok    strings.Builder
	)
	u = unit.New(1, unit.Dimensions{})
	flush := func() {
		if tok.Len() > 0 {
			tokens = append(tokens, tok.String())
			tok.Reset()
		}
	}
	for _, r := range strings.TrimSpace(expr) {
		switch r {
		case '*', '·', ' ':
			flush()
		case '/':
			flush()
			tokens = append(tokens, "/")
		default:
			tok.WriteRune(r)
		}
	}
	flush()
	divide := false
	for _, t := range tokens {
		if t == "/" {
			if divide {
				return nil, fmt.Errorf("malformed unit expression %q", expr)
			}
			divide = true
			continue
		}
		name, power := t, 1
		if i := strings.IndexByte(t, '^'); i >= 0 {
			name = t[:i]
			if power, err = strconv.Atoi(t[i+1:]); err != nil {
				return nil, fmt.Errorf("malformed exponent in unit %q", t)
			}
		}
		s, ok := symbols[name]
		if !ok {
			return nil, fmt.Errorf("unknown unit %q in %q", name, expr)
		}
		if divide {
			power = -power
			divide = false
		}
		for ; power > 0; power-- {
			u.Mul(s.unit())
		}
		for ; power < 0; power++ {
			u.Div(s.unit())
		}
	}
	if divide {
		return nil, fmt.Errorf("unit expression %q ends with '/'", expr)
	}
	return u, nil
}
