package convert

import (
	"math"
	"strconv"
	"strings"

	"github.com/charlie0129/uconv/pkg/units"
)

// Reason explains why a Result carries no value.
type Reason string

const (
	// ReasonMissingInput means a required value or dimension was blank.
	ReasonMissingInput Reason = "missing-input"
	// ReasonInvalidNumber means an input could not be parsed as a finite number.
	ReasonInvalidNumber Reason = "invalid-number"
	// ReasonNotFinite means the arithmetic overflowed.
	ReasonNotFinite Reason = "not-finite"
)

// RawDimension is a dimension as typed by the user.
type RawDimension struct {
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Request is a conversion as submitted by a caller, before parsing.
type Request struct {
	Category string `json:"category"`
	From     string `json:"from"`
	To       string `json:"to"`
	// Value is used unless From is a multi-input unit and any dimension is set.
	Value string `json:"value,omitempty"`
	// Dimensions is keyed by units.DimensionLength, DimensionWidth and
	// DimensionHeight.
	Dimensions map[string]RawDimension `json:"dimensions,omitempty"`
}

func (r Request) hasDimensions() bool {
	for _, d := range r.Dimensions {
		if strings.TrimSpace(d.Value) != "" {
			return true
		}
	}
	return false
}

// Result is the outcome of Evaluate. A Result without a value is the normal
// "nothing to show yet" state and should clear any displayed result.
type Result struct {
	Value  float64
	Reason Reason
	ok     bool
}

// OK reports whether r carries a value.
func (r Result) OK() bool {
	return r.ok
}

func valueResult(v float64) Result {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Result{Reason: ReasonNotFinite}
	}
	return Result{Value: v, ok: true}
}

// Evaluate parses and converts req.
//
// Blank or non-numeric input gives a Result without a value and a nil error.
// An unknown category or unit is an error.
func (c *Converter) Evaluate(req Request) (Result, error) {
	_, from, _, err := c.lookup(req.Category, req.From, req.To)
	if err != nil {
		return Result{}, err
	}

	if from.IsMultiInput() && (strings.TrimSpace(req.Value) == "" || req.hasDimensions()) {
		return c.evaluateDimensions(req, from.MultiInput.Kind)
	}

	v, reason := parseNumber(req.Value)
	if reason != "" {
		return Result{Reason: reason}, nil
	}

	out, err := c.ConvertValue(v, req.From, req.To, req.Category)
	if err != nil {
		return Result{}, err
	}
	return valueResult(out), nil
}

func (c *Converter) evaluateDimensions(req Request, kind units.Kind) (Result, error) {
	var (
		sides  []Dimension
		reason Reason
	)
	for _, name := range kind.Dimensions() {
		raw := req.Dimensions[name]

		unit := raw.Unit
		if unit == "" {
			unit = c.dimensionUnit
		}
		// Unknown units are caller errors even while values are still blank.
		if _, err := c.reg.Unit(units.Length, unit); err != nil {
			return Result{}, err
		}

		v, r := parseNumber(raw.Value)
		// missing wins over invalid so a half-filled form stays quiet
		if r == ReasonMissingInput || (r != "" && reason == "") {
			reason = r
		}
		sides = append(sides, Dimension{Value: v, Unit: unit})
	}
	if reason != "" {
		return Result{Reason: reason}, nil
	}

	d := DimensionSet{Length: sides[0], Width: sides[1]}
	if kind == units.KindVolume {
		d.Height = &sides[2]
	}

	out, err := c.ConvertDimensions(d, req.From, req.To, req.Category)
	if err != nil {
		return Result{}, err
	}
	return valueResult(out), nil
}

func parseNumber(s string) (float64, Reason) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ReasonMissingInput
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ReasonInvalidNumber
	}
	return v, ""
}
