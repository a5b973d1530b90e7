package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// Ensure painter handles every chart variant.
var _ domain.ChartVisitor = (*painter)(nil)

// painter draws one chart variant into the plot area of a panel.
type painter struct {
	c    *canvas
	area image.Rectangle
}

// --- Dashboard ---

func (p *painter) VisitKPI(d *domain.KPIData) error {
	groups := make([][]float64, len(d.Metrics))
	labels := make([]string, len(d.Metrics))
	for i, m := range d.Metrics {
		groups[i] = []float64{m.Baseline, m.Optimized}
		labels[i] = m.Name
	}
	p.groupedBars(groups, labels)
	p.legend("Baseline", "Optimized")
	return nil
}

func (p *painter) VisitOceanHealth(d *domain.OceanHealthData) error {
	xs := make([]float64, len(d.Points))
	ys := make([]float64, len(d.Points))
	for i, pt := range d.Points {
		xs[i], ys[i] = pt.Temp, pt.Oxygen
	}
	p.scatter(xs, ys, 0)
	p.axisLabels("Temp", "Oxygen")
	return nil
}

func (p *painter) VisitComposition(d *domain.CompositionData) error {
	p.hbars(namedValues(d.Slices))
	return nil
}

func (p *painter) VisitMonthlyTrend(d *domain.MonthlyTrendData) error {
	chl := make([]float64, len(d.Points))
	par := make([]float64, len(d.Points))
	labels := make([]string, len(d.Points))
	for i, pt := range d.Points {
		chl[i], par[i], labels[i] = pt.Chlorophyll, pt.PAR, pt.Month
	}
	// Units differ, so each series gets its own vertical scale.
	p.lines(indexes(len(chl)), chl)
	p.lines(indexes(len(par)), nil, par)
	p.xLabels(labels)
	p.legend("Chlorophyll", "PAR")
	return nil
}

func (p *painter) VisitTornado(d *domain.TornadoData) error {
	labels := make([]string, len(d.Drivers))
	values := make([]float64, len(d.Drivers))
	for i, dr := range d.Drivers {
		labels[i], values[i] = dr.Driver, dr.Impact
	}
	p.hbars(labels, values)
	return nil
}

func (p *painter) VisitUtilization(d *domain.UtilizationData) error {
	labels := make([]string, len(d.Facilities))
	values := make([]float64, len(d.Facilities))
	for i, f := range d.Facilities {
		labels[i], values[i] = f.Name, f.Utilization
	}
	p.hbars(labels, values)
	return nil
}

func (p *painter) VisitStackedDaily(d *domain.StackedDailyData) error {
	stacks := make([][]float64, len(d.Days))
	labels := make([]string, len(d.Days))
	for i, day := range d.Days {
		stacks[i] = []float64{float64(day.P1), float64(day.P2), float64(day.P3), float64(day.P4)}
		labels[i] = day.Day
	}
	p.stackedBars(stacks, labels)
	p.legend("P1", "P2", "P3", "P4")
	return nil
}

func (p *painter) VisitRadialGauge(d *domain.RadialGaugeData) error {
	p.hbarsRange([]string{"Baseline", "Optimized"}, []float64{d.Baseline, d.Optimized}, 0, 100)
	return nil
}

func (p *painter) VisitProfileCrossSection(d *domain.ProfileCrossSectionData) error {
	xs := make([]float64, len(d.Cycles))
	temp := make([]float64, len(d.Cycles))
	sal := make([]float64, len(d.Cycles))
	for i, c := range d.Cycles {
		xs[i], temp[i], sal[i] = float64(c.Cycle), c.Temperature, c.Salinity
	}
	p.lines(xs, temp)
	p.lines(xs, nil, sal)
	p.legend("Temperature", "Salinity")
	return nil
}

// --- Datasets ---

func (p *painter) VisitTSDiagram(d *domain.TSDiagramData) error {
	xs := make([]float64, len(d.Points))
	ys := make([]float64, len(d.Points))
	for i, pt := range d.Points {
		xs[i], ys[i] = pt.Salinity, pt.Temperature
	}
	p.scatter(xs, ys, 0)
	p.axisLabels("Salinity", "Temp")
	return nil
}

func (p *painter) VisitVerticalProfile(d *domain.VerticalProfileData) error {
	p.profile(d.Temperature, 0)
	p.profile(d.Salinity, 1)
	p.legend("Temperature", "Salinity")
	return nil
}

func (p *painter) VisitTimeSeries(d *domain.TimeSeriesData) error {
	xs := make([]float64, len(d.Days))
	st := make([]float64, len(d.Days))
	dt := make([]float64, len(d.Days))
	for i, day := range d.Days {
		xs[i], st[i], dt[i] = float64(day.Day), day.SurfaceTemp, day.DeepTemp
	}
	p.lines(xs, st, dt)
	p.legend("Surface", "Deep")
	return nil
}

func (p *painter) VisitQCDistribution(d *domain.QCDistributionData) error {
	stacks := make([][]float64, len(d.Variables))
	labels := make([]string, len(d.Variables))
	for i, v := range d.Variables {
		stacks[i] = []float64{v.QC1, v.QC2, v.QC3, v.QC4, v.QC9}
		labels[i] = v.Name
	}
	p.stackedBars(stacks, labels)
	p.legend("QC1", "QC2", "QC3", "QC4", "QC9")
	return nil
}

func (p *painter) VisitDataComposition(d *domain.DataCompositionData) error {
	labels, values := namedValues(append(append([]domain.NamedValue{}, d.Modes...), d.Platforms...))
	p.hbars(labels, values)
	return nil
}

func (p *painter) VisitCycleCount(d *domain.CycleCountData) error {
	labels := make([]string, len(d.Platforms))
	values := make([]float64, len(d.Platforms))
	for i, pl := range d.Platforms {
		labels[i], values[i] = pl.Name, float64(pl.Cycles)
	}
	p.bars(values, labels)
	return nil
}

func (p *painter) VisitDepthHistogram(d *domain.DepthHistogramData) error {
	labels := make([]string, len(d.Bins))
	values := make([]float64, len(d.Bins))
	for i, b := range d.Bins {
		labels[i], values[i] = b.Name, float64(b.Count)
	}
	p.bars(values, labels)
	return nil
}

func (p *painter) VisitJointDistribution(d *domain.JointDistributionData) error {
	var all []float64
	labels := make([]string, len(d.Bands))
	for i, b := range d.Bands {
		all = append(all, b.Box[:]...)
		all = append(all, b.Outliers...)
		labels[i] = b.Name
	}
	lo, hi := extent(all)
	y := newScale(lo, hi, p.area.Max.Y, p.area.Min.Y)
	slot := slotWidth(p.area.Dx(), len(d.Bands))
	for i, b := range d.Bands {
		if b.Samples == 0 {
			continue
		}
		cx := p.area.Min.X + slot*i + slot/2
		half := max(slot/4, 2)
		col := seriesColor(0)
		p.c.line(cx, y.at(b.Box[0]), cx, y.at(b.Box[4]), colorAxis)
		p.c.fill(image.Rect(cx-half, y.at(b.Box[3]), cx+half, y.at(b.Box[1])+1), col)
		p.c.line(cx-half, y.at(b.Box[2]), cx+half, y.at(b.Box[2]), colorBackground)
		for _, o := range b.Outliers {
			p.c.dot(cx, y.at(o), 1, seriesColor(3))
		}
	}
	p.xLabels(labels)
	return nil
}

// --- Predictive ---

func (p *painter) VisitForecast(d *domain.ForecastData) error {
	var xs, values []float64
	for _, pt := range d.History {
		xs = append(xs, float64(pt.Day))
		values = append(values, pt.Value)
	}
	fx := make([]float64, len(d.Forecast))
	fv := make([]float64, len(d.Forecast))
	lower := make([]float64, len(d.Forecast))
	upper := make([]float64, len(d.Forecast))
	for i, pt := range d.Forecast {
		fx[i], fv[i], lower[i], upper[i] = float64(pt.Day), pt.Value, pt.Lower, pt.Upper
	}

	xlo, xhi := extent(xs, fx)
	ylo, yhi := extent(values, lower, upper)
	x := newScale(xlo, xhi, p.area.Min.X, p.area.Max.X)
	y := newScale(ylo, yhi, p.area.Max.Y, p.area.Min.Y)
	for i := range fx {
		p.c.line(x.at(fx[i]), y.at(upper[i]), x.at(fx[i]), y.at(lower[i]), colorBand)
	}
	p.polyline(xs, values, x, y, seriesColor(0))
	p.polyline(fx, fv, x, y, seriesColor(1))
	p.legend("Observed", "Forecast")
	p.note("trend " + strconv.FormatFloat(d.Trend, 'f', 3, 64) + "/day, confidence " + strconv.FormatFloat(d.Confidence, 'f', 0, 64) + "%")
	return nil
}

func (p *painter) VisitAnomaly(d *domain.AnomalyData) error {
	xs := make([]float64, len(d.Anomalies))
	ys := make([]float64, len(d.Anomalies))
	for i, a := range d.Anomalies {
		xs[i], ys[i] = a.Temperature, a.Score
	}
	p.scatter(xs, ys, 3)
	p.axisLabels("Temp", "Score")
	return nil
}

// --- Primitives ---

func (p *painter) bars(values []float64, labels []string) {
	lo, hi := extent(values)
	y := newScale(min(lo, 0), max(hi, 0), p.area.Max.Y, p.area.Min.Y)
	zero := y.at(0)
	slot := slotWidth(p.area.Dx(), len(values))
	for i, v := range values {
		x0 := p.area.Min.X + slot*i + 1
		p.c.fill(span(x0, x0+max(slot-2, 1), zero, y.at(v)), seriesColor(0))
	}
	p.c.line(p.area.Min.X, zero, p.area.Max.X, zero, colorAxis)
	p.xLabels(labels)
}

func (p *painter) groupedBars(groups [][]float64, labels []string) {
	lo, hi := extent(groups...)
	y := newScale(min(lo, 0), max(hi, 0), p.area.Max.Y, p.area.Min.Y)
	zero := y.at(0)
	slot := slotWidth(p.area.Dx(), len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		w := max((slot-4)/len(g), 1)
		for j, v := range g {
			x0 := p.area.Min.X + slot*i + 2 + w*j
			p.c.fill(span(x0, x0+w, zero, y.at(v)), seriesColor(j))
		}
	}
	p.c.line(p.area.Min.X, zero, p.area.Max.X, zero, colorAxis)
	p.xLabels(labels)
}

func (p *painter) stackedBars(stacks [][]float64, labels []string) {
	var hi float64
	for _, s := range stacks {
		var total float64
		for _, v := range s {
			total += v
		}
		hi = max(hi, total)
	}
	y := newScale(0, hi, p.area.Max.Y, p.area.Min.Y)
	slot := slotWidth(p.area.Dx(), len(stacks))
	for i, s := range stacks {
		x0 := p.area.Min.X + slot*i + 1
		var base float64
		for j, v := range s {
			p.c.fill(span(x0, x0+max(slot-2, 1), y.at(base), y.at(base+v)), seriesColor(j))
			base += v
		}
	}
	p.xLabels(labels)
}

// hbars draws labelled horizontal bars around zero.
func (p *painter) hbars(labels []string, values []float64) {
	lo, hi := extent(values)
	p.hbarsRange(labels, values, min(lo, 0), max(hi, 0))
}

func (p *painter) hbarsRange(labels []string, values []float64, lo, hi float64) {
	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, textWidth(l))
	}
	labelW = min(labelW, p.area.Dx()/3)
	x := newScale(lo, hi, p.area.Min.X+labelW+6, p.area.Max.X)
	zero := x.at(0)
	row := slotWidth(p.area.Dy(), len(values))
	for i, v := range values {
		y0 := p.area.Min.Y + row*i + 1
		col := seriesColor(0)
		if v < 0 {
			col = seriesColor(3)
		}
		p.c.fill(image.Rect(min(zero, x.at(v)), y0, max(zero, x.at(v)), y0+max(row-2, 1)), col)
		if row >= 10 {
			p.c.text(p.area.Min.X, y0+row/2+4, clip(labels[i], labelW), colorMuted)
		}
	}
	p.c.line(zero, p.area.Min.Y, zero, p.area.Max.Y, colorAxis)
}

// lines plots each non-nil series on a shared scale. Passing nil for
// earlier series offsets the colour.
func (p *painter) lines(xs []float64, ys ...[]float64) {
	xlo, xhi := extent(xs)
	ylo, yhi := extent(ys...)
	x := newScale(xlo, xhi, p.area.Min.X, p.area.Max.X)
	y := newScale(ylo, yhi, p.area.Max.Y, p.area.Min.Y)
	for i, s := range ys {
		if s != nil {
			p.polyline(xs, s, x, y, seriesColor(i))
		}
	}
}

func (p *painter) polyline(xs, ys []float64, x, y scale, col color.Color) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		p.c.line(x.at(xs[i-1]), y.at(ys[i-1]), x.at(xs[i]), y.at(ys[i]), col)
	}
	if len(xs) == 1 && len(ys) == 1 {
		p.c.dot(x.at(xs[0]), y.at(ys[0]), 1, col)
	}
}

// profile plots values against depth with depth increasing downwards.
func (p *painter) profile(points []domain.DepthValue, colorIdx int) {
	xs := make([]float64, len(points))
	ds := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ds[i] = pt.Value, pt.Depth
	}
	xlo, xhi := extent(xs)
	dlo, dhi := extent(ds)
	x := newScale(xlo, xhi, p.area.Min.X, p.area.Max.X)
	y := newScale(dlo, dhi, p.area.Min.Y, p.area.Max.Y)
	p.polyline(xs, ds, x, y, seriesColor(colorIdx))
}

func (p *painter) scatter(xs, ys []float64, colorIdx int) {
	xlo, xhi := extent(xs)
	ylo, yhi := extent(ys)
	x := newScale(xlo, xhi, p.area.Min.X, p.area.Max.X)
	y := newScale(ylo, yhi, p.area.Max.Y, p.area.Min.Y)
	for i := range xs {
		p.c.dot(x.at(xs[i]), y.at(ys[i]), 1, seriesColor(colorIdx))
	}
}

// xLabels writes category labels under the plot when they fit.
func (p *painter) xLabels(labels []string) {
	if len(labels) == 0 {
		return
	}
	slot := slotWidth(p.area.Dx(), len(labels))
	if slot < textWidth("W") {
		return
	}
	for i, l := range labels {
		l = clip(l, slot-2)
		p.c.text(p.area.Min.X+slot*i+(slot-textWidth(l))/2, p.area.Max.Y+13, l, colorMuted)
	}
}

func (p *painter) axisLabels(x, y string) {
	p.c.text(p.area.Max.X-textWidth(x), p.area.Max.Y+13, x, colorMuted)
	p.c.text(p.area.Min.X, p.area.Min.Y-4, y, colorMuted)
}

func (p *painter) legend(names ...string) {
	x := p.area.Max.X
	for i := len(names) - 1; i >= 0; i-- {
		x -= textWidth(names[i]) + 12
		p.c.fill(image.Rect(x, p.area.Min.Y-12, x+8, p.area.Min.Y-4), seriesColor(i))
		p.c.text(x+10, p.area.Min.Y-3, names[i], colorMuted)
	}
}

func (p *painter) note(s string) {
	p.c.text(p.area.Min.X, p.area.Max.Y+13, clip(s, p.area.Dx()), colorMuted)
}

func namedValues(nv []domain.NamedValue) ([]string, []float64) {
	labels := make([]string, len(nv))
	values := make([]float64, len(nv))
	for i, v := range nv {
		labels[i], values[i] = v.Name, v.Value
	}
	return labels, values
}

func indexes(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func slotWidth(total, n int) int {
	if n == 0 {
		return total
	}
	return max(total/n, 1)
}

// span returns the rectangle between two y coordinates in either order.
func span(x0, x1, ya, yb int) image.Rectangle {
	return image.Rect(x0, min(ya, yb), x1, max(ya, yb)+1)
}
