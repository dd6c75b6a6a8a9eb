package config

type Config interface {
	// Precision is the number of decimals shown for a result.
	Precision() int
	GroupDigits() bool
	DefaultCategory() string
	// DimensionUnit is the length unit assumed for dimensions given without one.
	DimensionUnit() string
	AllowNonRootAccess() bool

	SetPrecision(int)
	SetGroupDigits(bool)
	SetDefaultCategory(string)
	SetDimensionUnit(string)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
