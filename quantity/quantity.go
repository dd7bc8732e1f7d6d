package quantity

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

var ErrDimension = errors.New("incompatible dimensions")

var numberRE = regexp.MustCompile(`^\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*(.*?)\s*$`)

// Quantity is a physical value as entered by the user ("2 mm", "1.2 kg/m^3"),
// held internally in SI base units.
type Quantity struct {
	text string
	si   float64
	dims unit.Dimensions
	set  bool
	bare bool
}

// Parse reads a number optionally followed by a unit expression.
func Parse(text string) (q Quantity, err error) {
	var (
		m = numberRE.FindStringSubmatch(text)
		v float64
		u *unit.Unit
	)
	if m == nil {
		err = fmt.Errorf("cannot parse quantity %q", text)
		return
	}
	if v, err = strconv.ParseFloat(m[1], 64); err != nil {
		return
	}
	if u, err = ParseUnit(m[2]); err != nil {
		return
	}
	q = Quantity{
		text: strings.TrimSpace(text),
		si:   v * u.Value(),
		dims: u.Dimensions(),
		set:  true,
	}
	return
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Quantity {
	q, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return q
}

// New builds a quantity from a value in the given units.
func New(value float64, units string) (q Quantity, err error) {
	var u *unit.Unit
	if u, err = ParseUnit(units); err != nil {
		return
	}
	text := strconv.FormatFloat(value, 'g', -1, 64)
	if units = strings.TrimSpace(units); units != "" {
		text += " " + units
	}
	return Quantity{text: text, si: value * u.Value(), dims: u.Dimensions(), set: true}, nil
}

// Dimensionless wraps a plain number.
func Dimensionless(v float64) Quantity {
	return Quantity{text: strconv.FormatFloat(v, 'g', -1, 64), si: v, dims: unit.Dimensions{}, set: true}
}

func (q Quantity) IsSet() bool { return q.set }

// SI returns the value in SI base units, whatever units it was entered in.
func (q Quantity) SI() float64 { return q.si }

func (q Quantity) Unit() *unit.Unit { return unit.New(q.si, q.dims) }

// As converts the quantity to the target units, failing if the dimensions differ.
func (q Quantity) As(target string) (v float64, err error) {
	var t *unit.Unit
	if t, err = ParseUnit(target); err != nil {
		return
	}
	if q.bare {
		v = q.si
		return
	}
	if !unit.DimensionsMatch(q.Unit(), t) {
		err = fmt.Errorf("%w: %q cannot be expressed in %q", ErrDimension, q.text, target)
		return
	}
	v = q.si / t.Value()
	return
}

// AsOr converts to the target units, returning def when the quantity was never set.
func (q Quantity) AsOr(target string, def float64) (float64, error) {
	if !q.set {
		return def, nil
	}
	return q.As(target)
}

func (q Quantity) String() string { return q.text }

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.set {
		return []byte("null"), nil
	}
	if q.bare {
		return json.Marshal(q.si)
	}
	return json.Marshal(q.text)
}

// UnmarshalJSON accepts either a quantity string or a bare number. A bare number carries no
// units and is read as already expressed in whatever units it is converted to.
func (q *Quantity) UnmarshalJSON(data []byte) (err error) {
	var (
		f float64
		s string
	)
	if t := strings.TrimSpace(string(data)); t == "null" || t == `""` {
		*q = Quantity{}
		return nil
	}
	if err = json.Unmarshal(data, &f); err == nil {
		*q = Dimensionless(f)
		q.bare = true
		return
	}
	if err = json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("quantity must be a number or a string: %s", string(data))
	}
	*q, err = Parse(s)
	return
}
