package domain

import (
	"fmt"
	"math"
	"strings"
)

// Seas the baseline dataset covers.
const (
	SeaArabian = "Arabian Sea"
	SeaBengal  = "Bay of Bengal"
)

// Float is an ARGO float in the baseline dataset.
type Float struct {
	ID       string  `json:"id" yaml:"id"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lng      float64 `json:"lng" yaml:"lng"`
	Location string  `json:"location" yaml:"location"`
	Sea      string  `json:"sea" yaml:"sea"`
}

// Validate checks the float has an identifier and plausible coordinates.
func (f Float) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("%w: float id is required", ErrInvalidInput)
	}
	if math.IsNaN(f.Lat) || math.IsNaN(f.Lng) {
		return fmt.Errorf("%w: Invalid coordinate data for float: %s", ErrInvalidInput, f.ID)
	}
	if f.Lat < -90 || f.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range for float %s", ErrInvalidInput, f.Lat, f.ID)
	}
	if f.Lng < -180 || f.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range for float %s", ErrInvalidInput, f.Lng, f.ID)
	}
	return nil
}

// SeaFromLocation derives the sea from a free-text location reference.
func SeaFromLocation(location string) string {
	if strings.Contains(strings.ToLower(location), "arabian") {
		return SeaArabian
	}
	return SeaBengal
}
