package units

// Rule selects how a unit is converted.
type Rule int

const (
	// RuleLinear converts through the category base unit using Unit.Multiplier.
	RuleLinear Rule = iota
	// RuleTemperature converts through degrees Celsius. Multiplier is unused.
	RuleTemperature
)

func (r Rule) String() string {
	switch r {
	case RuleLinear:
		return "linear"
	case RuleTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// Kind is the shape of a value built from dimensions.
type Kind string

const (
	// KindArea is length x width, in square meters.
	KindArea Kind = "area"
	// KindVolume is length x width x height, in cubic meters.
	KindVolume Kind = "volume"
)

// Dimensions returns the dimension names required to build a value of this kind.
func (k Kind) Dimensions() []string {
	if k == KindVolume {
		return []string{DimensionLength, DimensionWidth, DimensionHeight}
	}
	return []string{DimensionLength, DimensionWidth}
}

// Dimension names.
const (
	DimensionLength = "length"
	DimensionWidth  = "width"
	DimensionHeight = "height"
)

// MultiInput marks a unit whose value is normally computed from raw dimensions
// instead of being typed directly.
type MultiInput struct {
	Kind            Kind `json:"kind"`
	AllowMixedUnits bool `json:"allowMixedUnits"`
}

// Unit is a single entry of a Category.
type Unit struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Rule  Rule   `json:"-"`
	// Multiplier is how many base units one of this unit equals.
	// Only meaningful for RuleLinear.
	Multiplier float64     `json:"multiplier,omitempty"`
	MultiInput *MultiInput `json:"multiInput,omitempty"`
}

// IsMultiInput reports whether the unit is populated from dimensions.
func (u Unit) IsMultiInput() bool {
	return u.MultiInput != nil
}

// IsBase reports whether the unit is the base unit of a linear category.
func (u Unit) IsBase() bool {
	return u.Rule == RuleLinear && u.Multiplier == 1
}

func linear(id, label string, multiplier float64) Unit {
	return Unit{ID: id, Label: label, Rule: RuleLinear, Multiplier: multiplier}
}

func temperature(id, label string) Unit {
	return Unit{ID: id, Label: label, Rule: RuleTemperature}
}

func dimensional(id, label string, multiplier float64, kind Kind) Unit {
	u := linear(id, label, multiplier)
	u.MultiInput = &MultiInput{Kind: kind, AllowMixedUnits: true}
	return u
}
