package domain

import "math"

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range. NaN clamps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Parameter identifies a measured or derived variable in the dataset.
type Parameter string

// Dataset parameters.
const (
	ParamPlatformNumber Parameter = "platform_number"
	ParamCycleNumber    Parameter = "cycle_number"
	ParamLatitude       Parameter = "latitude"
	ParamLongitude      Parameter = "longitude"
	ParamPressure       Parameter = "pressure"
	ParamTemperature    Parameter = "temperature"
	ParamSalinity       Parameter = "salinity"
	ParamPH             Parameter = "ph"
	ParamOxygen         Parameter = "oxygen"
	ParamChlorophyll    Parameter = "chlorophyll"
	ParamNitrate        Parameter = "nitrate"
	ParamBBP700         Parameter = "bbp700"
	ParamCDOM           Parameter = "cdom"
	ParamDownwellingPAR Parameter = "downwelling_par"
)

// ParameterGroup groups parameters in the fact sheet.
type ParameterGroup string

// Parameter groups.
const (
	GroupIdentifiers  ParameterGroup = "Core Identifiers"
	GroupPosition     ParameterGroup = "Position and Time"
	GroupPhysical     ParameterGroup = "Physical Variables"
	GroupBiochemistry ParameterGroup = "Bio-optical and Biogeochemical Variables"
)

// ParameterSpec documents the observed range of a parameter.
type ParameterSpec struct {
	Name   Parameter
	Group  ParameterGroup
	Range  Range
	Unit   string
	Digits int
}

// parameterCatalogue lists every parameter with its documented range.
var parameterCatalogue = []ParameterSpec{
	{ParamPlatformNumber, GroupIdentifiers, Range{2902300, 2902306}, "", 0},
	{ParamCycleNumber, GroupIdentifiers, Range{1, 50}, "", 0},
	{ParamLatitude, GroupPosition, Range{15.06, 24.90}, "degrees North", 2},
	{ParamLongitude, GroupPosition, Range{60.14, 74.59}, "degrees East", 2},
	{ParamPressure, GroupPhysical, Range{20, 20}, "dbar", 0},
	{ParamTemperature, GroupPhysical, Range{26.51, 29.27}, "°C", 2},
	{ParamSalinity, GroupPhysical, Range{35.28, 35.70}, "PSU", 2},
	{ParamPH, GroupPhysical, Range{7.9297, 8.0356}, "total scale", 4},
	{ParamOxygen, GroupPhysical, Range{5.4508, 6.1149}, "mg/L", 4},
	{ParamChlorophyll, GroupBiochemistry, Range{0.94599, 1.27193}, "mg m⁻³", 5},
	{ParamNitrate, GroupBiochemistry, Range{1.63915, 2.08097}, "µmol kg⁻¹", 5},
	{ParamBBP700, GroupBiochemistry, Range{0.003708, 0.024895}, "m⁻¹ at 700 nm", 6},
	{ParamCDOM, GroupBiochemistry, Range{0.25337, 0.31673}, "m⁻¹", 5},
	{ParamDownwellingPAR, GroupBiochemistry, Range{168.58, 226.57}, "µmol photons m⁻² s⁻¹", 2},
}

// Parameters returns the documented parameter catalogue.
func Parameters() []ParameterSpec {
	out := make([]ParameterSpec, len(parameterCatalogue))
	copy(out, parameterCatalogue)
	return out
}

// RangeOf returns the documented range of p.
func RangeOf(p Parameter) (Range, bool) {
	for _, spec := range parameterCatalogue {
		if spec.Name == p {
			return spec.Range, true
		}
	}
	return Range{}, false
}

// MustRange returns the documented range of p and panics for unknown
// parameters. It is meant for package-level initialisation only.
func MustRange(p Parameter) Range {
	r, ok := RangeOf(p)
	if !ok {
		panic("domain: unknown parameter " + string(p))
	}
	return r
}
