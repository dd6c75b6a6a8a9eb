package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/uconv/pkg/convert"
	"github.com/charlie0129/uconv/pkg/units"
	"github.com/charlie0129/uconv/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Precision:          ptr.To(convert.DefaultPrecision),
		GroupDigits:        ptr.To(false),
		DefaultCategory:    ptr.To(units.Length),
		DimensionUnit:      ptr.To(units.Meters),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	Precision          *int    `json:"precision,omitempty"`
	GroupDigits        *bool   `json:"groupDigits,omitempty"`
	DefaultCategory    *string `json:"defaultCategory,omitempty"`
	DimensionUnit      *string `json:"dimensionUnit,omitempty"`
	AllowNonRootAccess *bool   `json:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		Precision:          ptr.To(c.Precision()),
		GroupDigits:        ptr.To(c.GroupDigits()),
		DefaultCategory:    ptr.To(c.DefaultCategory()),
		DimensionUnit:      ptr.To(c.DimensionUnit()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
	}

	return rawConfig, nil
}

// valueOr returns *p, or *def when p is nil.
func valueOr[T any](p, def *T) T {
	if p != nil {
		return *p
	}
	return *def
}

func (f *File) Precision() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	return valueOr(f.c.Precision, defaultFileConfig.Precision)
}

func (f *File) GroupDigits() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	return valueOr(f.c.GroupDigits, defaultFileConfig.GroupDigits)
}

func (f *File) DefaultCategory() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	return valueOr(f.c.DefaultCategory, defaultFileConfig.DefaultCategory)
}

func (f *File) DimensionUnit() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	return valueOr(f.c.DimensionUnit, defaultFileConfig.DimensionUnit)
}

func (f *File) AllowNonRootAccess() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	return valueOr(f.c.AllowNonRootAccess, defaultFileConfig.AllowNonRootAccess)
}

func (f *File) SetPrecision(i int) {
	if i < 0 || i > convert.MaxPrecision {
		panic("precision out of range")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.Precision = &i
}

func (f *File) SetGroupDigits(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.GroupDigits = &b
}

func (f *File) SetDefaultCategory(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.DefaultCategory = &s
}

func (f *File) SetDimensionUnit(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.DimensionUnit = &s
}

func (f *File) SetAllowNonRootAccess(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}

	f.c.AllowNonRootAccess = &b
}

// Validate checks that configured identifiers exist in the unit registry.
func (f *File) Validate() error {
	p := f.Precision()
	if p < 0 || p > convert.MaxPrecision {
		return pkgerrors.Errorf("precision must be between 0 and %d, got %d", convert.MaxPrecision, p)
	}
	if _, err := units.Default().Category(f.DefaultCategory()); err != nil {
		return pkgerrors.Wrap(err, "invalid defaultCategory")
	}
	if _, err := units.Default().Unit(units.Length, f.DimensionUnit()); err != nil {
		return pkgerrors.Wrap(err, "invalid dimensionUnit")
	}
	return nil
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"precision":          f.Precision(),
		"groupDigits":        f.GroupDigits(),
		"defaultCategory":    f.DefaultCategory(),
		"dimensionUnit":      f.DimensionUnit(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
	}
}
