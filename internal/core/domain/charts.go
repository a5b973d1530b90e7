package domain

import (
	"fmt"
	"strings"
	"time"
)

// ChartKind names one variant of ChartData.
type ChartKind string

// Chart kinds. Dashboard datasets first, then dataset-page and
// predictive datasets.
const (
	ChartKPI                 ChartKind = "kpi"
	ChartOceanHealth         ChartKind = "ocean_health"
	ChartComposition         ChartKind = "composition"
	ChartMonthlyTrend        ChartKind = "monthly_trend"
	ChartTornado             ChartKind = "tornado"
	ChartUtilization         ChartKind = "utilization"
	ChartStackedDaily        ChartKind = "stacked_daily"
	ChartRadialGauge         ChartKind = "radial_gauge"
	ChartProfileCrossSection ChartKind = "profile_cross_section"
	ChartTSDiagram           ChartKind = "ts_diagram"
	ChartVerticalProfile     ChartKind = "vertical_profile"
	ChartTimeSeries          ChartKind = "time_series"
	ChartQCDistribution      ChartKind = "qc_distribution"
	ChartDataComposition     ChartKind = "data_composition"
	ChartCycleCount          ChartKind = "cycle_count"
	ChartDepthHistogram      ChartKind = "depth_histogram"
	ChartJointDistribution   ChartKind = "joint_distribution"
	ChartForecast            ChartKind = "forecast"
	ChartAnomaly             ChartKind = "anomaly"
)

// AllChartKinds returns every chart kind.
func AllChartKinds() []ChartKind {
	return []ChartKind{
		ChartKPI, ChartOceanHealth, ChartComposition, ChartMonthlyTrend,
		ChartTornado, ChartUtilization, ChartStackedDaily, ChartRadialGauge,
		ChartProfileCrossSection, ChartTSDiagram, ChartVerticalProfile,
		ChartTimeSeries, ChartQCDistribution, ChartDataComposition,
		ChartCycleCount, ChartDepthHistogram, ChartJointDistribution,
		ChartForecast, ChartAnomaly,
	}
}

// DashboardChartKinds returns the kinds shown on the descriptive dashboard.
func DashboardChartKinds() []ChartKind {
	return []ChartKind{
		ChartKPI, ChartOceanHealth, ChartComposition, ChartMonthlyTrend,
		ChartTornado, ChartUtilization, ChartStackedDaily, ChartRadialGauge,
		ChartProfileCrossSection,
	}
}

// IsValid returns true if the kind is known.
func (k ChartKind) IsValid() bool {
	for _, known := range AllChartKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseChartKind converts a string (hyphens allowed) into a ChartKind.
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown chart kind %q", ErrUnsupportedType, s)
	}
	return k, nil
}

// DatasetParams selects a synthetic dataset instance. Zero values pick
// the generator's defaults.
type DatasetParams struct {
	// Seed for the generator; 0 selects the dataset family's default seed.
	Seed uint32 `json:"seed,omitempty"`

	// Count of points, cycles, days or records; 0 selects the default.
	Count int `json:"count,omitempty"`

	// End anchors time-based datasets; zero selects the current time.
	End time.Time `json:"end,omitempty"`
}

// ChartData is the closed set of synthetic chart datasets. Only types in
// this package implement it; use a ChartVisitor to handle every variant.
type ChartData interface {
	// Kind returns the variant tag.
	Kind() ChartKind

	// Accept dispatches to the visitor method for the variant.
	Accept(v ChartVisitor) error

	isChartData()
}

// ChartVisitor handles every ChartData variant. Adding a variant adds a
// method here, so every visitor stops compiling until it handles it.
type ChartVisitor interface {
	VisitKPI(*KPIData) error
	VisitOceanHealth(*OceanHealthData) error
	VisitComposition(*CompositionData) error
	VisitMonthlyTrend(*MonthlyTrendData) error
	VisitTornado(*TornadoData) error
	VisitUtilization(*UtilizationData) error
	VisitStackedDaily(*StackedDailyData) error
	VisitRadialGauge(*RadialGaugeData) error
	VisitProfileCrossSection(*ProfileCrossSectionData) error
	VisitTSDiagram(*TSDiagramData) error
	VisitVerticalProfile(*VerticalProfileData) error
	VisitTimeSeries(*TimeSeriesData) error
	VisitQCDistribution(*QCDistributionData) error
	VisitDataComposition(*DataCompositionData) error
	VisitCycleCount(*CycleCountData) error
	VisitDepthHistogram(*DepthHistogramData) error
	VisitJointDistribution(*JointDistributionData) error
	VisitForecast(*ForecastData) error
	VisitAnomaly(*AnomalyData) error
}

// NamedValue is a labelled number (donut slice, bar).
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// KPIMetric compares a baseline value against an optimized scenario.
type KPIMetric struct {
	Name      string  `json:"name"`
	Baseline  float64 `json:"baseline"`
	Optimized float64 `json:"optimized"`
}

// KPIData holds the KPI comparison bars.
type KPIData struct {
	Metrics []KPIMetric `json:"metrics"`
}

// OceanHealthPoint is a single profile in the ocean health scatter.
type OceanHealthPoint struct {
	ProfileID string  `json:"profileId"`
	Region    string  `json:"region"`
	Temp      float64 `json:"temp"`
	Nitrate   float64 `json:"nitrate"`
	Oxygen    float64 `json:"oxygen"`
}

// OceanHealthData holds the ocean health scatter.
type OceanHealthData struct {
	Points []OceanHealthPoint `json:"points"`
}

// CompositionData holds the driver composition donut; values sum to 100.
type CompositionData struct {
	Slices []NamedValue `json:"slices"`
}

// MonthlyTrendPoint is one month of chlorophyll and PAR.
type MonthlyTrendPoint struct {
	Month       string  `json:"month"`
	Chlorophyll float64 `json:"chlorophyll"`
	PAR         float64 `json:"par"`
}

// MonthlyTrendData holds the monthly trend area chart.
type MonthlyTrendData struct {
	Points []MonthlyTrendPoint `json:"points"`
}

// TornadoDriver is one driver's signed impact.
type TornadoDriver struct {
	Driver string  `json:"driver"`
	Impact float64 `json:"impact"`
}

// TornadoData holds driver impacts sorted by magnitude, largest first.
type TornadoData struct {
	Drivers []TornadoDriver `json:"drivers"`
}

// FacilityUtilization is one operation's utilization percentage.
type FacilityUtilization struct {
	Name        string  `json:"name"`
	Utilization float64 `json:"utilization"`
}

// UtilizationData holds facility utilization sorted ascending.
type UtilizationData struct {
	Facilities []FacilityUtilization `json:"facilities"`
}

// StackedDay is the per-platform event count for one day.
type StackedDay struct {
	Day string `json:"day"`
	P1  int    `json:"P1"`
	P2  int    `json:"P2"`
	P3  int    `json:"P3"`
	P4  int    `json:"P4"`
}

// Total returns the sum across platforms.
func (d StackedDay) Total() int {
	return d.P1 + d.P2 + d.P3 + d.P4
}

// StackedDailyData holds the stacked daily bar chart.
type StackedDailyData struct {
	Days []StackedDay `json:"days"`
}

// RadialGaugeData holds the baseline and optimized gauge values.
type RadialGaugeData struct {
	Baseline  float64 `json:"baseline"`
	Optimized float64 `json:"optimized"`
}

// CyclePoint is one float cycle in the profile cross section.
type CyclePoint struct {
	Cycle       int     `json:"cycle"`
	Temperature float64 `json:"temperature"`
	Salinity    float64 `json:"salinity"`
}

// ProfileCrossSectionData holds per-cycle temperature and salinity.
type ProfileCrossSectionData struct {
	Cycles []CyclePoint `json:"cycles"`
}

// TSPoint is a temperature-salinity sample at depth.
type TSPoint struct {
	Depth       float64 `json:"depth"`
	Temperature float64 `json:"temperature"`
	Salinity    float64 `json:"salinity"`
}

// TSDiagramData holds the temperature-salinity diagram.
type TSDiagramData struct {
	Points []TSPoint `json:"points"`
}

// DepthValue is a value at a depth.
type DepthValue struct {
	Depth float64 `json:"depth"`
	Value float64 `json:"value"`
}

// VerticalProfileData holds temperature and salinity against depth.
type VerticalProfileData struct {
	Temperature []DepthValue `json:"temp"`
	Salinity    []DepthValue `json:"sal"`
}

// TimeSeriesPoint is one day of surface and deep measurements.
type TimeSeriesPoint struct {
	Day         int     `json:"day"`
	SurfaceTemp float64 `json:"surfaceTemp"`
	DeepTemp    float64 `json:"deepTemp"`
	SurfaceSal  float64 `json:"surfaceSal"`
	DeepSal     float64 `json:"deepSal"`
}

// TimeSeriesData holds the multi-depth time series.
type TimeSeriesData struct {
	Days []TimeSeriesPoint `json:"days"`
}

// QCFlags is the percentage of samples per QC flag for one variable.
type QCFlags struct {
	Name string  `json:"name"`
	QC1  float64 `json:"qc_1"`
	QC2  float64 `json:"qc_2"`
	QC3  float64 `json:"qc_3"`
	QC4  float64 `json:"qc_4"`
	QC9  float64 `json:"qc_9"`
}

// QCDistributionData holds the QC flag distribution.
type QCDistributionData struct {
	Variables []QCFlags `json:"variables"`
}

// DataCompositionData holds the data-mode and platform-type donuts.
type DataCompositionData struct {
	Modes     []NamedValue `json:"modes"`
	Platforms []NamedValue `json:"platforms"`
}

// CycleCount is the number of cycles a platform completed.
type CycleCount struct {
	Name   string `json:"name"`
	Cycles int    `json:"cycles"`
}

// CycleCountData holds cycle counts sorted descending.
type CycleCountData struct {
	Platforms []CycleCount `json:"platforms"`
}

// HistogramBin is a labelled count.
type HistogramBin struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DepthHistogramData holds profile counts per 200 dbar bin.
type DepthHistogramData struct {
	Bins []HistogramBin `json:"bins"`
}

// BoxPlot summarises a distribution. Box is
// [lowerWhisker, q1, median, q3, upperWhisker].
type BoxPlot struct {
	Name     string     `json:"name"`
	Box      [5]float64 `json:"box"`
	Outliers []float64  `json:"outliers"`
	Samples  int        `json:"samples"`
}

// JointDistributionData holds temperature distributions per depth band.
type JointDistributionData struct {
	Bands []BoxPlot `json:"bands"`
}

// SeriesPoint is a value on a given day.
type SeriesPoint struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

// ForecastPoint is a forecast value with its uncertainty band.
type ForecastPoint struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastData holds observed history followed by a forecast band.
type ForecastData struct {
	Parameter Parameter       `json:"parameter"`
	History   []SeriesPoint   `json:"history"`
	Forecast  []ForecastPoint `json:"forecast"`

	// Trend is the fitted slope in units per day.
	Trend float64 `json:"trend"`

	// Confidence is a 0-100 score that falls as the band widens.
	Confidence float64 `json:"confidence"`
}

// Anomaly is a record flagged by the simulated anomaly detector.
type Anomaly struct {
	ID             string  `json:"id"`
	PlatformNumber int     `json:"platform_number"`
	Date           string  `json:"date_str"`
	Temperature    float64 `json:"temperature"`
	Salinity       float64 `json:"salinity"`
	Oxygen         float64 `json:"oxygen_mg_per_L"`
	Chlorophyll    float64 `json:"chlorophyll_mg_m3"`
	Nitrate        float64 `json:"nitrate_uM"`
	PH             float64 `json:"pH"`
	Score          float64 `json:"anomaly_score"`
}

// AnomalyData holds anomalies sorted by score, highest first.
type AnomalyData struct {
	Anomalies []Anomaly `json:"anomalies"`
}

// AboveSensitivity returns at most limit anomalies scoring at least
// sensitivity. A non-positive limit returns all matches.
func (a *AnomalyData) AboveSensitivity(sensitivity float64, limit int) []Anomaly {
	var out []Anomaly
	for _, an := range a.Anomalies {
		if an.Score < sensitivity {
			continue
		}
		out = append(out, an)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (*KPIData) Kind() ChartKind                 { return ChartKPI }
func (*OceanHealthData) Kind() ChartKind         { return ChartOceanHealth }
func (*CompositionData) Kind() ChartKind         { return ChartComposition }
func (*MonthlyTrendData) Kind() ChartKind        { return ChartMonthlyTrend }
func (*TornadoData) Kind() ChartKind             { return ChartTornado }
func (*UtilizationData) Kind() ChartKind         { return ChartUtilization }
func (*StackedDailyData) Kind() ChartKind        { return ChartStackedDaily }
func (*RadialGaugeData) Kind() ChartKind         { return ChartRadialGauge }
func (*ProfileCrossSectionData) Kind() ChartKind { return ChartProfileCrossSection }
func (*TSDiagramData) Kind() ChartKind           { return ChartTSDiagram }
func (*VerticalProfileData) Kind() ChartKind     { return ChartVerticalProfile }
func (*TimeSeriesData) Kind() ChartKind          { return ChartTimeSeries }
func (*QCDistributionData) Kind() ChartKind      { return ChartQCDistribution }
func (*DataCompositionData) Kind() ChartKind     { return ChartDataComposition }
func (*CycleCountData) Kind() ChartKind          { return ChartCycleCount }
func (*DepthHistogramData) Kind() ChartKind      { return ChartDepthHistogram }
func (*JointDistributionData) Kind() ChartKind   { return ChartJointDistribution }
func (*ForecastData) Kind() ChartKind            { return ChartForecast }
func (*AnomalyData) Kind() ChartKind             { return ChartAnomaly }

func (d *KPIData) Accept(v ChartVisitor) error                 { return v.VisitKPI(d) }
func (d *OceanHealthData) Accept(v ChartVisitor) error         { return v.VisitOceanHealth(d) }
func (d *CompositionData) Accept(v ChartVisitor) error         { return v.VisitComposition(d) }
func (d *MonthlyTrendData) Accept(v ChartVisitor) error        { return v.VisitMonthlyTrend(d) }
func (d *TornadoData) Accept(v ChartVisitor) error             { return v.VisitTornado(d) }
func (d *UtilizationData) Accept(v ChartVisitor) error         { return v.VisitUtilization(d) }
func (d *StackedDailyData) Accept(v ChartVisitor) error        { return v.VisitStackedDaily(d) }
func (d *RadialGaugeData) Accept(v ChartVisitor) error         { return v.VisitRadialGauge(d) }
func (d *ProfileCrossSectionData) Accept(v ChartVisitor) error { return v.VisitProfileCrossSection(d) }
func (d *TSDiagramData) Accept(v ChartVisitor) error           { return v.VisitTSDiagram(d) }
func (d *VerticalProfileData) Accept(v ChartVisitor) error     { return v.VisitVerticalProfile(d) }
func (d *TimeSeriesData) Accept(v ChartVisitor) error          { return v.VisitTimeSeries(d) }
func (d *QCDistributionData) Accept(v ChartVisitor) error      { return v.VisitQCDistribution(d) }
func (d *DataCompositionData) Accept(v ChartVisitor) error     { return v.VisitDataComposition(d) }
func (d *CycleCountData) Accept(v ChartVisitor) error          { return v.VisitCycleCount(d) }
func (d *DepthHistogramData) Accept(v ChartVisitor) error      { return v.VisitDepthHistogram(d) }
func (d *JointDistributionData) Accept(v ChartVisitor) error   { return v.VisitJointDistribution(d) }
func (d *ForecastData) Accept(v ChartVisitor) error            { return v.VisitForecast(d) }
func (d *AnomalyData) Accept(v ChartVisitor) error             { return v.VisitAnomaly(d) }

func (*KPIData) isChartData()                 {}
func (*OceanHealthData) isChartData()         {}
func (*CompositionData) isChartData()         {}
func (*MonthlyTrendData) isChartData()        {}
func (*TornadoData) isChartData()             {}
func (*UtilizationData) isChartData()         {}
func (*StackedDailyData) isChartData()        {}
func (*RadialGaugeData) isChartData()         {}
func (*ProfileCrossSectionData) isChartData() {}
func (*TSDiagramData) isChartData()           {}
func (*VerticalProfileData) isChartData()     {}
func (*TimeSeriesData) isChartData()          {}
func (*QCDistributionData) isChartData()      {}
func (*DataCompositionData) isChartData()     {}
func (*CycleCountData) isChartData()          {}
func (*DepthHistogramData) isChartData()      {}
func (*JointDistributionData) isChartData()   {}
func (*ForecastData) isChartData()            {}
func (*AnomalyData) isChartData()             {}
