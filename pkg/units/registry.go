package units

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrUnknownCategory is returned when a category id is not in the registry.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownUnit is returned when a unit id is not in the requested category.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrInvalidCategory is returned by New when a category breaks a registry invariant.
	ErrInvalidCategory = errors.New("invalid category")
)

// Category is an ordered set of units sharing one base unit.
type Category struct {
	ID    string
	Name  string
	units []Unit
	index map[string]int
}

// NewCategory builds a category. Units keep the given order. Use New or
// Registry to get a validated category.
func NewCategory(id, name string, us ...Unit) *Category {
	c := &Category{
		ID:    id,
		Name:  name,
		units: us,
		index: make(map[string]int, len(us)),
	}
	for i, u := range us {
		if _, ok := c.index[u.ID]; !ok {
			c.index[u.ID] = i
		}
	}
	return c
}

// Units returns a copy of the units in display order.
func (c *Category) Units() []Unit {
	out := make([]Unit, len(c.units))
	copy(out, c.units)
	return out
}

// UnitIDs returns unit ids in display order.
func (c *Category) UnitIDs() []string {
	ids := make([]string, 0, len(c.units))
	for _, u := range c.units {
		ids = append(ids, u.ID)
	}
	return ids
}

// Unit looks up a unit by id.
func (c *Category) Unit(id string) (Unit, error) {
	i, ok := c.index[id]
	if !ok {
		return Unit{}, pkgerrors.Wrapf(ErrUnknownUnit, "%q in category %q", id, c.ID)
	}
	return c.units[i], nil
}

// Has reports whether the category contains the unit.
func (c *Category) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Base returns the base unit of a linear category. ok is false for
// temperature.
func (c *Category) Base() (Unit, bool) {
	for _, u := range c.units {
		if u.IsBase() {
			return u, true
		}
	}
	return Unit{}, false
}

// DefaultPair returns the first two units, which callers select when the user
// switches to this category.
func (c *Category) DefaultPair() (from, to string) {
	return c.units[0].ID, c.units[1].ID
}

// IsTemperature reports whether the category uses the temperature rule.
func (c *Category) IsTemperature() bool {
	return len(c.units) > 0 && c.units[0].Rule == RuleTemperature
}

func (c *Category) validate() error {
	if c.ID == "" {
		return pkgerrors.Wrap(ErrInvalidCategory, "empty category id")
	}
	if len(c.units) < 2 {
		return pkgerrors.Wrapf(ErrInvalidCategory, "%q has %d units, need at least 2", c.ID, len(c.units))
	}
	if len(c.index) != len(c.units) {
		return pkgerrors.Wrapf(ErrInvalidCategory, "%q has duplicate unit ids", c.ID)
	}

	rule := c.units[0].Rule
	bases := 0
	for _, u := range c.units {
		if u.Rule != rule {
			return pkgerrors.Wrapf(ErrInvalidCategory, "%q mixes %s and %s units", c.ID, rule, u.Rule)
		}
		if u.Rule != RuleLinear {
			continue
		}
		if u.Multiplier <= 0 {
			return pkgerrors.Wrapf(ErrInvalidCategory, "%q: unit %q has non-positive multiplier %v", c.ID, u.ID, u.Multiplier)
		}
		if u.IsBase() {
			bases++
		}
	}
	if rule == RuleLinear && bases != 1 {
		return pkgerrors.Wrapf(ErrInvalidCategory, "%q has %d base units, need exactly 1", c.ID, bases)
	}

	return nil
}

// Registry is an immutable, ordered catalog of categories.
type Registry struct {
	categories []*Category
	byID       map[string]*Category
}

// New validates the categories and builds a registry.
func New(categories ...*Category) (*Registry, error) {
	r := &Registry{
		categories: categories,
		byID:       make(map[string]*Category, len(categories)),
	}
	for _, c := range categories {
		if err := c.validate(); err != nil {
			return nil, err
		}
		if _, ok := r.byID[c.ID]; ok {
			return nil, pkgerrors.Wrapf(ErrInvalidCategory, "duplicate category %q", c.ID)
		}
		r.byID[c.ID] = c
	}
	return r, nil
}

var defaultRegistry = mustNew(catalog()...)

func mustNew(categories ...*Category) *Registry {
	r, err := New(categories...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

// Categories returns categories in display order.
func (r *Registry) Categories() []*Category {
	out := make([]*Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Category looks up a category by id.
func (r *Registry) Category(id string) (*Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownCategory, "%q", id)
	}
	return c, nil
}

// Unit looks up a unit within a category.
func (r *Registry) Unit(category, unit string) (Unit, error) {
	c, err := r.Category(category)
	if err != nil {
		return Unit{}, err
	}
	return c.Unit(unit)
}
