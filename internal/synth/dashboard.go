package synth

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// MaxCount bounds every count argument.
const MaxCount = 100000

// Default sizes of the dashboard datasets.
const (
	DefaultOceanHealthPoints = 120
	DefaultTrendMonths       = 16
	DefaultStackedDays       = 30
	DefaultProfileCycles     = 10
)

func checkCount(name string, n int) error {
	if n < 0 || n > MaxCount {
		return fmt.Errorf("%w: %s count %d outside [0, %d]", domain.ErrInvalidInput, name, n, MaxCount)
	}
	return nil
}

// OceanHealth generates n profiles split between the two seas, with
// nitrate and oxygen falling as temperature rises.
func OceanHealth(seed uint32, n int) (*domain.OceanHealthData, error) {
	if err := checkCount("ocean health", n); err != nil {
		return nil, err
	}
	g := New(seed)
	tempRange := domain.MustRange(domain.ParamTemperature)
	nitrateRange := domain.MustRange(domain.ParamNitrate)
	oxygenRange := domain.MustRange(domain.ParamOxygen)
	points := make([]domain.OceanHealthPoint, 0, n)
	for i := 0; i < n; i++ {
		arabian := g.Float64() > 0.5
		region, tempMean, nitrateMean := domain.SeaBengal, 28.5, 1.8
		if arabian {
			region, tempMean, nitrateMean = domain.SeaArabian, 28.0, 1.9
		}
		temp := g.Normal(tempMean, 0.4)
		nitrate := g.Normal(nitrateMean, 0.1) - (temp-28)*0.1
		oxygen := g.Normal(5.8, 0.2) - (temp-28)*0.15
		points = append(points, domain.OceanHealthPoint{
			ProfileID: fmt.Sprintf("P%d", 1000+i),
			Region:    region,
			Temp:      tempRange.Clamp(temp),
			Nitrate:   nitrateRange.Clamp(nitrate),
			Oxygen:    oxygenRange.Clamp(oxygen),
		})
	}
	return &domain.OceanHealthData{Points: points}, nil
}

// KPI generates the five baseline/optimized regional metrics.
func KPI(seed uint32) *domain.KPIData {
	g := New(seed)
	temp := g.InRange(27.8, 28.5)
	salinity := g.InRange(35.4, 35.6)
	oxygen := g.InRange(5.6, 5.8)
	chlorophyll := g.InRange(1.0, 1.2)
	nitrate := g.InRange(1.8, 2.0)

	return &domain.KPIData{Metrics: []domain.KPIMetric{
		{Name: "Mean Temp (°C)", Baseline: temp, Optimized: temp - g.InRange(0.2, 0.4)},
		{Name: "Mean Salinity (PSU)", Baseline: salinity, Optimized: salinity + g.InRange(-0.02, 0.02)},
		{Name: "Mean Oxygen", Baseline: oxygen, Optimized: oxygen + g.InRange(0.05, 0.15)},
		{Name: "Mean Chlorophyll", Baseline: chlorophyll, Optimized: chlorophyll + g.InRange(-0.03, 0.02)},
		{Name: "Mean Nitrate", Baseline: nitrate, Optimized: nitrate - g.InRange(0.05, 0.15)},
	}}
}

// Composition generates four driver shares summing to 100 with the light
// share held in [10, 20]. Any excess or deficit is spread over the other
// three shares in proportion to their size.
func Composition(seed uint32) *domain.CompositionData {
	g := New(seed)
	temp := g.InRange(30, 40)
	salinity := g.InRange(15, 25)
	nitrate := g.InRange(15, 25)
	light := 100 - temp - salinity - nitrate

	var delta float64
	switch {
	case light < 10:
		delta = light - 10
		light = 10
	case light > 20:
		delta = light - 20
		light = 20
	}
	if delta != 0 {
		total := temp + salinity + nitrate
		temp += delta * (temp / total)
		salinity += delta * (salinity / total)
		nitrate += delta * (nitrate / total)
	}

	return &domain.CompositionData{Slices: []domain.NamedValue{
		{Name: "Temp. sensitivity", Value: temp},
		{Name: "Salinity strat.", Value: salinity},
		{Name: "Nitrate limitation", Value: nitrate},
		{Name: "Light (PAR) avail.", Value: light},
	}}
}

// MonthlyTrend generates seasonal chlorophyll and PAR for the months
// ending with the month of end, oldest first.
func MonthlyTrend(seed uint32, months int, end time.Time) (*domain.MonthlyTrendData, error) {
	if err := checkCount("monthly trend", months); err != nil {
		return nil, err
	}
	g := New(seed)
	chlRange := domain.MustRange(domain.ParamChlorophyll)
	parRange := domain.MustRange(domain.ParamDownwellingPAR)
	points := make([]domain.MonthlyTrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		date := time.Date(end.Year(), end.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		phase := float64(date.Month()-1) / 12 * 2 * math.Pi

		chlFactor := math.Sin(phase + g.Float64()*0.5)
		parFactor := math.Sin(phase + math.Pi/4 + g.Float64()*0.5)
		chlorophyll := 1.11 + chlFactor*0.16 + g.InRange(-0.05, 0.05)
		par := 198 + parFactor*29 + g.InRange(-10, 10)

		points = append(points, domain.MonthlyTrendPoint{
			Month:       fmt.Sprintf("%s '%02d", date.Month().String()[:3], date.Year()%100),
			Chlorophyll: chlRange.Clamp(chlorophyll),
			PAR:         parRange.Clamp(par),
		})
	}
	return &domain.MonthlyTrendData{Points: points}, nil
}

// Tornado generates oxygen driver impacts sorted by magnitude, largest first.
func Tornado(seed uint32) *domain.TornadoData {
	g := New(seed)
	drivers := []domain.TornadoDriver{
		{Driver: "Temp. Anomaly", Impact: -g.InRange(0.08, 0.20)},
		{Driver: "Stratification", Impact: -g.InRange(0.05, 0.12)},
		{Driver: "Mixing Depth", Impact: g.InRange(0.06, 0.18)},
		{Driver: "Nitrate Supply", Impact: g.InRange(0.03, 0.10)},
		{Driver: "PAR", Impact: g.InRange(0.01, 0.05)},
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return math.Abs(drivers[i].Impact) > math.Abs(drivers[j].Impact)
	})
	return &domain.TornadoData{Drivers: drivers}
}

// Utilization generates facility utilization sorted ascending.
func Utilization(seed uint32) *domain.UtilizationData {
	g := New(seed)
	facilities := []domain.FacilityUtilization{
		{Name: "Kerala Coastal Ops", Utilization: g.InRange(75, 88)},
		{Name: "Andaman Ops", Utilization: g.InRange(60, 75)},
		{Name: "Arabian Sea Transect", Utilization: g.InRange(85, 95)},
		{Name: "BoB Central Transect", Utilization: g.InRange(55, 68)},
		{Name: "Nicobar Leg", Utilization: g.InRange(91, 96)},
	}
	sort.SliceStable(facilities, func(i, j int) bool {
		return facilities[i].Utilization < facilities[j].Utilization
	})
	return &domain.UtilizationData{Facilities: facilities}
}

// StackedDaily generates per-platform profile counts for each day, with
// occasional spikes on a single platform.
func StackedDaily(seed uint32, days int) (*domain.StackedDailyData, error) {
	if err := checkCount("stacked daily", days); err != nil {
		return nil, err
	}
	g := New(seed)
	out := make([]domain.StackedDay, 0, days)
	for i := 0; i < days; i++ {
		var counts [4]int
		for j := range counts {
			if g.Float64() > 0.3 {
				counts[j] = g.Intn(0, 3)
			}
		}
		if g.Float64() < 0.1 {
			platform := g.Intn(1, 5) - 1
			counts[platform] += g.Intn(2, 4)
		}
		out = append(out, domain.StackedDay{
			Day: fmt.Sprintf("Day %d", i+1),
			P1:  counts[0],
			P2:  counts[1],
			P3:  counts[2],
			P4:  counts[3],
		})
	}
	return &domain.StackedDailyData{Days: out}, nil
}

// RadialGauge generates a baseline score and an optimized score capped at 100.
func RadialGauge(seed uint32) *domain.RadialGaugeData {
	g := New(seed)
	baseline := g.InRange(72, 82)
	return &domain.RadialGaugeData{
		Baseline:  baseline,
		Optimized: math.Min(100, baseline+g.InRange(5, 10)),
	}
}

// ProfileCrossSection generates temperature and salinity for cycles 1..n
// around a common base.
func ProfileCrossSection(seed uint32, cycles int) (*domain.ProfileCrossSectionData, error) {
	if err := checkCount("profile cross section", cycles); err != nil {
		return nil, err
	}
	g := New(seed)
	baseTemp := g.InRange(27.5, 28.5)
	baseSalinity := g.InRange(35.3, 35.5)
	out := make([]domain.CyclePoint, 0, cycles)
	for i := 1; i <= cycles; i++ {
		out = append(out, domain.CyclePoint{
			Cycle:       i,
			Temperature: baseTemp + g.InRange(-0.5, 0.5),
			Salinity:    baseSalinity + g.InRange(-0.1, 0.1),
		})
	}
	return &domain.ProfileCrossSectionData{Cycles: out}, nil
}
