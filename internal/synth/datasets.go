package synth

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// Default sizes of the dataset-page datasets.
const (
	DefaultTSPoints          = 200
	DefaultProfileLevels     = 50
	DefaultTimeSeriesDays    = 365
	DefaultCyclePlatforms    = 25
	DefaultHistogramProfiles = 500
	DefaultJointSamples      = 500
)

// maxDepth is the deepest pressure level sampled, in dbar.
const maxDepth = 2000.0

// TSDiagram generates n temperature-salinity samples where temperature
// falls and salinity rises with depth.
func TSDiagram(seed uint32, n int) (*domain.TSDiagramData, error) {
	if err := checkCount("ts diagram", n); err != nil {
		return nil, err
	}
	g := New(seed)
	points := make([]domain.TSPoint, 0, n)
	for i := 0; i < n; i++ {
		depth := g.InRange(0, maxDepth)
		points = append(points, domain.TSPoint{
			Depth:       depth,
			Temperature: g.InRange(2, 28) - depth/150,
			Salinity:    g.InRange(34.5, 35.5) + depth/5000,
		})
	}
	return &domain.TSDiagramData{Points: points}, nil
}

// VerticalProfiles generates temperature and salinity at n evenly spaced
// depth levels between the surface and 2000 dbar.
func VerticalProfiles(seed uint32, n int) (*domain.VerticalProfileData, error) {
	if err := checkCount("vertical profile", n); err != nil {
		return nil, err
	}
	g := New(seed)
	out := &domain.VerticalProfileData{
		Temperature: make([]domain.DepthValue, 0, n),
		Salinity:    make([]domain.DepthValue, 0, n),
	}
	for i := 0; i < n; i++ {
		depth := float64(i) * (maxDepth / float64(n))
		temp := g.InRange(2, 28) - depth/150 + (g.Float64()-0.5)*2
		sal := g.InRange(34.5, 35.5) + depth/5000 + (g.Float64()-0.5)*0.1
		out.Temperature = append(out.Temperature, domain.DepthValue{Depth: depth, Value: temp})
		out.Salinity = append(out.Salinity, domain.DepthValue{Depth: depth, Value: sal})
	}
	return out, nil
}

// TimeSeries generates a seasonal surface signal and a flat deep signal
// for each day.
func TimeSeries(seed uint32, days int) (*domain.TimeSeriesData, error) {
	if err := checkCount("time series", days); err != nil {
		return nil, err
	}
	g := New(seed)
	out := make([]domain.TimeSeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		season := math.Sin(float64(i) / 365 * 2 * math.Pi)
		out = append(out, domain.TimeSeriesPoint{
			Day:         i,
			SurfaceTemp: 26 + season*2 + g.InRange(-0.5, 0.5),
			DeepTemp:    5 + g.InRange(-0.2, 0.2),
			SurfaceSal:  34.8 - season*0.1 + g.InRange(-0.05, 0.05),
			DeepSal:     35.1 + g.InRange(-0.02, 0.02),
		})
	}
	return &domain.TimeSeriesData{Days: out}, nil
}

// QCDistribution generates QC flag percentages for pressure, temperature
// and salinity.
func QCDistribution(seed uint32) *domain.QCDistributionData {
	g := New(seed)
	names := []string{"PRES_QC", "TEMP_QC", "PSAL_QC"}
	vars := make([]domain.QCFlags, 0, len(names))
	for _, name := range names {
		vars = append(vars, domain.QCFlags{
			Name: name,
			QC1:  g.InRange(80, 95),
			QC2:  g.InRange(2, 10),
			QC3:  g.InRange(1, 5),
			QC4:  g.InRange(0, 2),
			QC9:  g.InRange(0, 1),
		})
	}
	return &domain.QCDistributionData{Variables: vars}
}

// DataComposition generates profile counts by data mode and platform type.
func DataComposition(seed uint32) *domain.DataCompositionData {
	g := New(seed)
	count := func(min, max int) float64 { return float64(g.Intn(min, max)) }
	return &domain.DataCompositionData{
		Modes: []domain.NamedValue{
			{Name: "Real-time", Value: count(300, 400)},
			{Name: "Adjusted", Value: count(600, 700)},
		},
		Platforms: []domain.NamedValue{
			{Name: "ARVOR", Value: count(40, 50)},
			{Name: "PROVOR", Value: count(30, 40)},
			{Name: "APEX", Value: count(15, 25)},
			{Name: "Other", Value: count(5, 10)},
		},
	}
}

// CycleCounts generates completed cycles per platform sorted descending.
// About one platform in ten is young and has fewer than 50 cycles.
func CycleCounts(seed uint32, platforms int) (*domain.CycleCountData, error) {
	if err := checkCount("cycle count", platforms); err != nil {
		return nil, err
	}
	g := New(seed)
	out := make([]domain.CycleCount, 0, platforms)
	for i := 0; i < platforms; i++ {
		var cycles int
		if g.Float64() > 0.1 {
			cycles = g.Intn(50, 150)
		} else {
			cycles = g.Intn(5, 49)
		}
		out = append(out, domain.CycleCount{Name: fmt.Sprintf("P%d", 1000+i), Cycles: cycles})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cycles > out[j].Cycles })
	return &domain.CycleCountData{Platforms: out}, nil
}

// depthBinWidth is the width of a depth histogram bin in dbar.
const depthBinWidth = 200

// DepthHistogram bins n profile depths into ten 200 dbar bins.
func DepthHistogram(seed uint32, n int) (*domain.DepthHistogramData, error) {
	if err := checkCount("depth histogram", n); err != nil {
		return nil, err
	}
	g := New(seed)
	bins := make([]domain.HistogramBin, int(maxDepth)/depthBinWidth)
	for i := range bins {
		bins[i].Name = fmt.Sprintf("%d-%d dbar", i*depthBinWidth, (i+1)*depthBinWidth)
	}
	for i := 0; i < n; i++ {
		idx := int(g.InRange(0, maxDepth) / depthBinWidth)
		if idx > len(bins)-1 {
			idx = len(bins) - 1
		}
		bins[idx].Count++
	}
	return &domain.DepthHistogramData{Bins: bins}, nil
}

// JointDistribution samples n temperatures at random depths and
// summarises them as box plots per depth band.
func JointDistribution(seed uint32, n int) (*domain.JointDistributionData, error) {
	if err := checkCount("joint distribution", n); err != nil {
		return nil, err
	}
	g := New(seed)
	bands := []struct {
		name    string
		maxDbar float64
		values  []float64
	}{
		{name: "0-200m", maxDbar: 200},
		{name: "200-600m", maxDbar: 600},
		{name: "600-2000m", maxDbar: maxDepth},
	}
	for i := 0; i < n; i++ {
		depth := g.InRange(0, maxDepth)
		temp := 28 - depth/100 + g.InRange(-2, 2)
		for b := range bands {
			if depth <= bands[b].maxDbar {
				bands[b].values = append(bands[b].values, temp)
				break
			}
		}
	}

	out := make([]domain.BoxPlot, 0, len(bands))
	for _, b := range bands {
		out = append(out, boxPlot(b.name, b.values))
	}
	return &domain.JointDistributionData{Bands: out}, nil
}

// boxPlot computes whiskers at 1.5 IQR clipped to the data range.
func boxPlot(name string, values []float64) domain.BoxPlot {
	bp := domain.BoxPlot{Name: name, Samples: len(values), Outliers: []float64{}}
	if len(values) == 0 {
		return bp
	}
	sort.Float64s(values)
	n := len(values)
	q1 := values[n/4]
	median := values[n/2]
	q3 := values[n*3/4]
	iqr := q3 - q1
	lower := math.Max(values[0], q1-1.5*iqr)
	upper := math.Min(values[n-1], q3+1.5*iqr)
	for _, v := range values {
		if v < lower || v > upper {
			bp.Outliers = append(bp.Outliers, v)
		}
	}
	bp.Box = [5]float64{lower, q1, median, q3, upper}
	return bp
}
