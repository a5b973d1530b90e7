package synth

import (
	"fmt"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// DefaultSeed returns the default seed of the family kind belongs to.
func DefaultSeed(kind domain.ChartKind) uint32 {
	switch kind {
	case domain.ChartForecast, domain.ChartAnomaly:
		return PredictiveSeed
	case domain.ChartTSDiagram, domain.ChartVerticalProfile, domain.ChartTimeSeries,
		domain.ChartQCDistribution, domain.ChartDataComposition, domain.ChartCycleCount,
		domain.ChartDepthHistogram, domain.ChartJointDistribution:
		return DatasetSeed
	default:
		return DashboardSeed
	}
}

// DefaultCount returns the default size of kind, or 0 for fixed-size kinds.
func DefaultCount(kind domain.ChartKind) int {
	switch kind {
	case domain.ChartOceanHealth:
		return DefaultOceanHealthPoints
	case domain.ChartMonthlyTrend:
		return DefaultTrendMonths
	case domain.ChartStackedDaily:
		return DefaultStackedDays
	case domain.ChartProfileCrossSection:
		return DefaultProfileCycles
	case domain.ChartTSDiagram:
		return DefaultTSPoints
	case domain.ChartVerticalProfile:
		return DefaultProfileLevels
	case domain.ChartTimeSeries:
		return DefaultTimeSeriesDays
	case domain.ChartCycleCount:
		return DefaultCyclePlatforms
	case domain.ChartDepthHistogram:
		return DefaultHistogramProfiles
	case domain.ChartJointDistribution:
		return DefaultJointSamples
	case domain.ChartForecast:
		return DefaultTrainingDays
	case domain.ChartAnomaly:
		return DefaultAnomalies
	default:
		return 0
	}
}

// Generate produces the dataset of the given kind. Zero-valued params
// select the kind's default seed, count and the current time.
func Generate(kind domain.ChartKind, params domain.DatasetParams) (domain.ChartData, error) {
	seed := params.Seed
	if seed == 0 {
		seed = DefaultSeed(kind)
	}
	count := params.Count
	if count == 0 {
		count = DefaultCount(kind)
	}
	if err := checkCount(string(kind), count); err != nil {
		return nil, err
	}
	end := params.End
	if end.IsZero() {
		end = time.Now()
	}

	switch kind {
	case domain.ChartKPI:
		return KPI(seed), nil
	case domain.ChartOceanHealth:
		return wrap(OceanHealth(seed, count))
	case domain.ChartComposition:
		return Composition(seed), nil
	case domain.ChartMonthlyTrend:
		return wrap(MonthlyTrend(seed, count, end))
	case domain.ChartTornado:
		return Tornado(seed), nil
	case domain.ChartUtilization:
		return Utilization(seed), nil
	case domain.ChartStackedDaily:
		return wrap(StackedDaily(seed, count))
	case domain.ChartRadialGauge:
		return RadialGauge(seed), nil
	case domain.ChartProfileCrossSection:
		return wrap(ProfileCrossSection(seed, count))
	case domain.ChartTSDiagram:
		return wrap(TSDiagram(seed, count))
	case domain.ChartVerticalProfile:
		return wrap(VerticalProfiles(seed, count))
	case domain.ChartTimeSeries:
		return wrap(TimeSeries(seed, count))
	case domain.ChartQCDistribution:
		return QCDistribution(seed), nil
	case domain.ChartDataComposition:
		return DataComposition(seed), nil
	case domain.ChartCycleCount:
		return wrap(CycleCounts(seed, count))
	case domain.ChartDepthHistogram:
		return wrap(DepthHistogram(seed, count))
	case domain.ChartJointDistribution:
		return wrap(JointDistribution(seed, count))
	case domain.ChartForecast:
		return wrap(Forecast(seed, domain.ParamTemperature, count, DefaultHorizon))
	case domain.ChartAnomaly:
		return wrap(Anomalies(seed, count))
	default:
		return nil, fmt.Errorf("%w: unknown chart kind %q", domain.ErrUnsupportedType, kind)
	}
}

// wrap converts a typed generator result into ChartData without turning
// a nil pointer into a non-nil interface.
func wrap[T domain.ChartData](data T, err error) (domain.ChartData, error) {
	if err != nil {
		return nil, err
	}
	return data, nil
}
