package synth

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// Default sizes of the predictive datasets.
const (
	DefaultTrainingDays = 100
	DefaultHorizon      = 30
	DefaultAnomalies    = 250
)

// seasonPeriod is the period of the synthetic seasonal cycle in days.
const seasonPeriod = 60.0

// anomalyEpoch is the first date an anomaly can be reported on.
var anomalyEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Forecast generates trainingDays of observed history for param followed
// by a horizon-day forecast. The forecast extends a least-squares trend
// plus the seasonal cycle, and its band widens with the horizon.
func Forecast(seed uint32, param domain.Parameter, trainingDays, horizon int) (*domain.ForecastData, error) {
	if err := checkCount("training days", trainingDays); err != nil {
		return nil, err
	}
	if err := checkCount("horizon", horizon); err != nil {
		return nil, err
	}
	r, ok := domain.RangeOf(param)
	if !ok {
		return nil, fmt.Errorf("%w: no range for parameter %q", domain.ErrUnsupportedType, param)
	}

	g := New(seed)
	span := r.Max - r.Min
	mid := r.Min + span/2
	amp := span / 4
	drift := g.InRange(-0.5, 0.5) * span / 365
	noise := span / 20
	season := func(day int) float64 { return amp * math.Sin(2*math.Pi*float64(day)/seasonPeriod) }

	history := make([]domain.SeriesPoint, 0, trainingDays)
	for d := 0; d < trainingDays; d++ {
		v := mid + season(d) + drift*float64(d) + g.Normal(0, noise)
		history = append(history, domain.SeriesPoint{Day: d, Value: r.Clamp(v)})
	}

	slope, intercept := fitTrend(history, season)
	resid := residualStd(history, season, slope, intercept)

	forecast := make([]domain.ForecastPoint, 0, horizon)
	var widthSum float64
	for h := 1; h <= horizon; h++ {
		day := trainingDays - 1 + h
		v := intercept + slope*float64(day) + season(day)
		half := 1.96 * resid * math.Sqrt(1+float64(h)/seasonPeriod)
		widthSum += 2 * half
		forecast = append(forecast, domain.ForecastPoint{Day: day, Value: v, Lower: v - half, Upper: v + half})
	}

	confidence := 100.0
	if horizon > 0 && span > 0 {
		confidence = clamp(100*(1-widthSum/float64(horizon)/span), 0, 100)
	}
	return &domain.ForecastData{
		Parameter:  param,
		History:    history,
		Forecast:   forecast,
		Trend:      slope,
		Confidence: confidence,
	}, nil
}

// fitTrend fits value - season(day) = intercept + slope*day by least squares.
func fitTrend(points []domain.SeriesPoint, season func(int) float64) (slope, intercept float64) {
	n := float64(len(points))
	if n == 0 {
		return 0, 0
	}
	var sx, sy, sxx, sxy float64
	for _, p := range points {
		x := float64(p.Day)
		y := p.Value - season(p.Day)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0, sy / n
	}
	slope = (n*sxy - sx*sy) / den
	intercept = (sy - slope*sx) / n
	return slope, intercept
}

func residualStd(points []domain.SeriesPoint, season func(int) float64, slope, intercept float64) float64 {
	if len(points) < 2 {
		return 0
	}
	var ss float64
	for _, p := range points {
		e := p.Value - (intercept + slope*float64(p.Day) + season(p.Day))
		ss += e * e
	}
	return math.Sqrt(ss / float64(len(points)-1))
}

// Anomalies generates n sensor records scored by a simulated isolation
// forest, highest score first. Records with high scores sit further
// outside the documented parameter ranges.
func Anomalies(seed uint32, n int) (*domain.AnomalyData, error) {
	if err := checkCount("anomalies", n); err != nil {
		return nil, err
	}
	g := New(seed)
	platforms := domain.MustRange(domain.ParamPlatformNumber)
	sample := func(p domain.Parameter, score float64) float64 {
		r := domain.MustRange(p)
		v := g.InRange(r.Min, r.Max)
		// Push the value outward in proportion to the score.
		span := r.Max - r.Min
		if g.Float64() < 0.5 {
			return v - score*span
		}
		return v + score*span
	}

	out := make([]domain.Anomaly, 0, n)
	for i := 0; i < n; i++ {
		score := 0.25 * math.Pow(g.Float64(), 2)
		out = append(out, domain.Anomaly{
			ID:             fmt.Sprintf("A%04d", i),
			PlatformNumber: g.Intn(int(platforms.Min), int(platforms.Max)+1),
			Date:           anomalyEpoch.AddDate(0, 0, g.Intn(0, 365)).Format("2006-01-02"),
			Temperature:    sample(domain.ParamTemperature, score),
			Salinity:       sample(domain.ParamSalinity, score),
			Oxygen:         sample(domain.ParamOxygen, score),
			Chlorophyll:    sample(domain.ParamChlorophyll, score),
			Nitrate:        sample(domain.ParamNitrate, score),
			PH:             sample(domain.ParamPH, score),
			Score:          score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return &domain.AnomalyData{Anomalies: out}, nil
}
