package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlowName identifies a prompt-templated AI flow.
type FlowName string

// Known flows.
const (
	FlowChat            FlowName = "chat"
	FlowDashboardChat   FlowName = "dashboard_chat"
	FlowFloatInsights   FlowName = "float_insights"
	FlowVisualization   FlowName = "visualization_suggestion"
	FlowLearningSummary FlowName = "learning_summary"
	FlowReportContent   FlowName = "report_content"
)

// --- Flow inputs ---

// ChatInput is the input of the conversational flow.
type ChatInput struct {
	Query   string
	History []ChatTurn
}

// DashboardChatInput is the input of the dashboard conversational flow.
type DashboardChatInput struct {
	Query   string
	Mode    DashboardMode
	Context string
}

// FloatInsightsInput is the input of the float insights flow.
type FloatInsightsInput struct {
	FloatID string
	Summary string
}

// VisualizationInput is the input of the visualization suggestion flow.
type VisualizationInput struct {
	Query string
}

// LearningSummaryInput is the input of the learning summary flow.
type LearningSummaryInput struct {
	InteractionData string
}

// ReportInput is the input of the report content flow.
type ReportInput struct {
	Query string
}

// --- Flow outputs ---

// ChatAnswer is the conversational flow output.
type ChatAnswer struct {
	Answer string `json:"answer"`
}

// Validate checks the answer conforms to its schema.
func (a ChatAnswer) Validate() error {
	if strings.TrimSpace(a.Answer) == "" {
		return fmt.Errorf("answer is empty")
	}
	return nil
}

// FloatInsights is the float insights flow output.
type FloatInsights struct {
	Insights []string `json:"insights"`
}

// Validate checks the insights conform to their schema.
func (f FloatInsights) Validate() error {
	if len(f.Insights) == 0 {
		return fmt.Errorf("insights are empty")
	}
	for i, s := range f.Insights {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("insights[%d] is empty", i)
		}
	}
	return nil
}

// LearningSummary is the learning summary flow output.
type LearningSummary struct {
	Summary string `json:"summary"`
}

// Validate checks the summary conforms to its schema.
func (l LearningSummary) Validate() error {
	if strings.TrimSpace(l.Summary) == "" {
		return fmt.Errorf("summary is empty")
	}
	return nil
}

// ReportContent is the structured content a report is assembled from.
type ReportContent struct {
	Title           string   `json:"title"`
	Introduction    string   `json:"introduction"`
	KeyInsights     []string `json:"keyInsights"`
	Recommendations string   `json:"recommendations"`
}

// Validate checks the content conforms to its schema.
func (r ReportContent) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("title is empty")
	case strings.TrimSpace(r.Introduction) == "":
		return fmt.Errorf("introduction is empty")
	case len(r.KeyInsights) == 0:
		return fmt.Errorf("keyInsights are empty")
	case strings.TrimSpace(r.Recommendations) == "":
		return fmt.Errorf("recommendations are empty")
	}
	for i, s := range r.KeyInsights {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("keyInsights[%d] is empty", i)
		}
	}
	return nil
}

// ChartComponent names a chart the dashboard knows how to render.
type ChartComponent string

// Chart components available to the visualization flow.
const (
	ComponentKPIBars                      ChartComponent = "KpiBars"
	ComponentMonthlyTrendArea             ChartComponent = "MonthlyTrendArea"
	ComponentOceanHealthScatter           ChartComponent = "OceanHealthScatter"
	ComponentProfileCrossSection          ChartComponent = "ProfileCrossSection"
	ComponentFloatSalinityPressureScatter ChartComponent = "FloatSalinityPressureScatter"
)

// AllChartComponents returns the components in prompt order.
func AllChartComponents() []ChartComponent {
	return []ChartComponent{
		ComponentKPIBars,
		ComponentMonthlyTrendArea,
		ComponentOceanHealthScatter,
		ComponentProfileCrossSection,
		ComponentFloatSalinityPressureScatter,
	}
}

// IsValid returns true if the component is known.
func (c ChartComponent) IsValid() bool {
	for _, known := range AllChartComponents() {
		if c == known {
			return true
		}
	}
	return false
}

// ChartKind returns the dataset that backs the component.
func (c ChartComponent) ChartKind() ChartKind {
	switch c {
	case ComponentKPIBars:
		return ChartKPI
	case ComponentMonthlyTrendArea:
		return ChartMonthlyTrend
	case ComponentOceanHealthScatter:
		return ChartOceanHealth
	case ComponentProfileCrossSection:
		return ChartProfileCrossSection
	case ComponentFloatSalinityPressureScatter:
		return ChartTSDiagram
	default:
		return ""
	}
}

// ControlType is the UI control a customization option renders as.
type ControlType string

// Control types.
const (
	ControlSlider   ControlType = "slider"
	ControlCheckbox ControlType = "checkbox"
	ControlSelect   ControlType = "select"
)

// IsValid returns true if the control type is recognised.
func (t ControlType) IsValid() bool {
	return t == ControlSlider || t == ControlCheckbox || t == ControlSelect
}

// OptionValue holds a string, number or boolean default value.
type OptionValue struct {
	kind   optionKind
	str    string
	num    float64
	truthy bool
}

type optionKind uint8

const (
	optionUnset optionKind = iota
	optionString
	optionNumber
	optionBool
)

// StringValue returns an OptionValue holding s.
func StringValue(s string) OptionValue { return OptionValue{kind: optionString, str: s} }

// NumberValue returns an OptionValue holding n.
func NumberValue(n float64) OptionValue { return OptionValue{kind: optionNumber, num: n} }

// BoolValue returns an OptionValue holding b.
func BoolValue(b bool) OptionValue { return OptionValue{kind: optionBool, truthy: b} }

// IsSet reports whether a value was provided.
func (v OptionValue) IsSet() bool { return v.kind != optionUnset }

// AsString returns the value if it holds a string.
func (v OptionValue) AsString() (string, bool) { return v.str, v.kind == optionString }

// AsNumber returns the value if it holds a number.
func (v OptionValue) AsNumber() (float64, bool) { return v.num, v.kind == optionNumber }

// AsBool returns the value if it holds a boolean.
func (v OptionValue) AsBool() (bool, bool) { return v.truthy, v.kind == optionBool }

// MarshalJSON implements json.Marshaler.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case optionString:
		return json.Marshal(v.str)
	case optionNumber:
		return json.Marshal(v.num)
	case optionBool:
		return json.Marshal(v.truthy)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. Only strings, numbers and
// booleans are accepted.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = StringValue(t)
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	default:
		return fmt.Errorf("defaultValue must be a string, number or boolean, got %s", string(data))
	}
	return nil
}

// CustomizationOption describes a UI control for the default chart.
type CustomizationOption struct {
	Type         ControlType `json:"type"`
	Label        string      `json:"label"`
	DefaultValue OptionValue `json:"defaultValue"`
	Min          *float64    `json:"min,omitempty"`
	Max          *float64    `json:"max,omitempty"`
	Step         *float64    `json:"step,omitempty"`
	Options      []string    `json:"options,omitempty"`
}

// Validate checks the option conforms to its schema.
func (o CustomizationOption) Validate() error {
	if !o.Type.IsValid() {
		return fmt.Errorf("unknown control type %q", o.Type)
	}
	if strings.TrimSpace(o.Label) == "" {
		return fmt.Errorf("label is empty")
	}
	if !o.DefaultValue.IsSet() {
		return fmt.Errorf("defaultValue is missing")
	}
	if o.Min != nil && o.Max != nil && *o.Min > *o.Max {
		return fmt.Errorf("min %v exceeds max %v", *o.Min, *o.Max)
	}
	if o.Type == ControlSelect && len(o.Options) == 0 {
		return fmt.Errorf("select control %q has no options", o.Label)
	}
	return nil
}

// SuggestedChart is a single chart recommendation.
type SuggestedChart struct {
	ChartType      string         `json:"chartType"`
	ChartComponent ChartComponent `json:"chartComponent"`
	Reason         string         `json:"reason"`
}

// VisualizationSuggestion is the visualization flow output.
type VisualizationSuggestion struct {
	Summary              string                `json:"summary"`
	SuggestedCharts      []SuggestedChart      `json:"suggestedCharts"`
	DefaultChart         ChartComponent        `json:"defaultChart"`
	CustomizationOptions []CustomizationOption `json:"customizationOptions"`
	Caption              string                `json:"caption"`
}

// Validate checks the suggestion conforms to its schema.
func (v VisualizationSuggestion) Validate() error {
	if strings.TrimSpace(v.Summary) == "" {
		return fmt.Errorf("summary is empty")
	}
	if len(v.SuggestedCharts) == 0 {
		return fmt.Errorf("suggestedCharts are empty")
	}
	found := false
	for i, c := range v.SuggestedCharts {
		if !c.ChartComponent.IsValid() {
			return fmt.Errorf("suggestedCharts[%d]: unknown component %q", i, c.ChartComponent)
		}
		if strings.TrimSpace(c.ChartType) == "" {
			return fmt.Errorf("suggestedCharts[%d]: chartType is empty", i)
		}
		if c.ChartComponent == v.DefaultChart {
			found = true
		}
	}
	if !v.DefaultChart.IsValid() {
		return fmt.Errorf("unknown defaultChart %q", v.DefaultChart)
	}
	if !found {
		return fmt.Errorf("defaultChart %q is not among the suggested charts", v.DefaultChart)
	}
	for i, o := range v.CustomizationOptions {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("customizationOptions[%d]: %w", i, err)
		}
	}
	if strings.TrimSpace(v.Caption) == "" {
		return fmt.Errorf("caption is empty")
	}
	return nil
}
