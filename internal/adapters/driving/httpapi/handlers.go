package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// Request body limits.
const (
	maxJSONBody = 1 << 20
	maxCSVBody  = 10 << 20
)

type chatRequest struct {
	Query   string            `json:"query"`
	History []domain.ChatTurn `json:"history,omitempty"`
	Intent  string            `json:"intent,omitempty"`
	Mode    string            `json:"mode,omitempty"`
}

type chatResponse struct {
	Intent        string `json:"intent"`
	Response      string `json:"response"`
	ReportDataURI string `json:"reportDataUri,omitempty"`
}

type dashboardChatRequest struct {
	Query   string `json:"query"`
	Mode    string `json:"mode,omitempty"`
	Context string `json:"context,omitempty"`
}

type dashboardChatResponse struct {
	Response string `json:"response"`
}

type insightsRequest struct {
	FloatID string `json:"floatId"`
	Summary string `json:"summary"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type learningRequest struct {
	InteractionData string `json:"interactionData"`
}

type reportResponse struct {
	Title       string   `json:"title"`
	KeyInsights []string `json:"keyInsights"`
	MIMEType    string   `json:"mimeType"`
	Pages       int      `json:"pages"`
	DataURI     string   `json:"dataUri"`
}

type snapshotRequest struct {
	Kinds  []string `json:"kinds,omitempty"`
	Seed   uint32   `json:"seed,omitempty"`
	Format string   `json:"format,omitempty"`
}

type documentResponse struct {
	Title    string `json:"title"`
	MIMEType string `json:"mimeType"`
	Pages    int    `json:"pages"`
	DataURI  string `json:"dataUri"`
}

type datasetResponse struct {
	Kind domain.ChartKind `json:"kind"`
	Data domain.ChartData `json:"data"`
}

type kindsResponse struct {
	Kinds     []domain.ChartKind `json:"kinds"`
	Dashboard []domain.ChartKind `json:"dashboard"`
}

type dashboardResponse struct {
	Seed     uint32                                `json:"seed"`
	Datasets map[domain.ChartKind]domain.ChartData `json:"datasets"`
}

type floatsResponse struct {
	Floats []domain.Float `json:"floats"`
	Count  int            `json:"count"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	query, err := req.toQuery()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.ports.Chat.Handle(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Intent:        result.Intent.String(),
		Response:      result.Response,
		ReportDataURI: result.ReportDataURI(),
	})
}

func (req chatRequest) toQuery() (domain.ChatQuery, error) {
	intent, err := domain.ParseIntent(req.Intent)
	if err != nil {
		return domain.ChatQuery{}, err
	}
	mode, err := domain.ParseChatMode(req.Mode)
	if err != nil {
		return domain.ChatQuery{}, err
	}
	return domain.ChatQuery{
		Text:    req.Query,
		History: req.History,
		Intent:  intent,
		Mode:    mode,
	}, nil
}

func (s *Server) handleDashboardChat(w http.ResponseWriter, r *http.Request) {
	var req dashboardChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	mode := domain.DashboardMode(req.Mode)
	if mode == "" {
		mode = domain.DashboardDescriptive
	}
	if !mode.IsValid() {
		writeError(w, fmt.Errorf("%w: unknown dashboard mode %q", domain.ErrInvalidInput, req.Mode))
		return
	}

	answer, err := s.ports.Chat.DashboardChat(r.Context(), domain.DashboardChatInput{
		Query:   req.Query,
		Mode:    mode,
		Context: req.Context,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardChatResponse{Response: answer})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if s.ports.Flows == nil {
		writeError(w, errNotConfigured)
		return
	}
	var req insightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	insights, err := s.ports.Flows.FloatInsights(r.Context(), domain.FloatInsightsInput{
		FloatID: req.FloatID,
		Summary: req.Summary,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleVisualizations(w http.ResponseWriter, r *http.Request) {
	if s.ports.Flows == nil {
		writeError(w, errNotConfigured)
		return
	}
	var req queryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	suggestion, err := s.ports.Flows.SuggestVisualizations(r.Context(), domain.VisualizationInput{Query: req.Query})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleLearning(w http.ResponseWriter, r *http.Request) {
	if s.ports.Flows == nil {
		writeError(w, errNotConfigured)
		return
	}
	var req learningRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	summary, err := s.ports.Flows.LearningSummary(r.Context(), domain.LearningSummaryInput{
		InteractionData: req.InteractionData,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.ports.Reports == nil {
		writeError(w, errNotConfigured)
		return
	}
	var req queryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	report, err := s.ports.Reports.Generate(r.Context(), req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Title:       report.Content.Title,
		KeyInsights: report.Content.KeyInsights,
		MIMEType:    report.Document.MIMEType,
		Pages:       report.Document.Pages,
		DataURI:     report.Document.DataURI(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.ports.Reports == nil {
		writeError(w, errNotConfigured)
		return
	}
	var req snapshotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	format, err := domain.ParseSnapshotFormat(req.Format)
	if err != nil {
		writeError(w, err)
		return
	}
	kinds := make([]domain.ChartKind, 0, len(req.Kinds))
	for _, k := range req.Kinds {
		kind, err := domain.ParseChartKind(k)
		if err != nil {
			writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
			return
		}
		kinds = append(kinds, kind)
	}

	doc, err := s.ports.Reports.Snapshot(r.Context(), kinds, req.Seed, format)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{
		Title:    doc.Title,
		MIMEType: doc.MIMEType,
		Pages:    doc.Pages,
		DataURI:  doc.DataURI(),
	})
}

func (s *Server) handleListKinds(w http.ResponseWriter, _ *http.Request) {
	if s.ports.Datasets == nil {
		writeError(w, errNotConfigured)
		return
	}
	writeJSON(w, http.StatusOK, kindsResponse{
		Kinds:     s.ports.Datasets.Kinds(),
		Dashboard: domain.DashboardChartKinds(),
	})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	if s.ports.Datasets == nil {
		writeError(w, errNotConfigured)
		return
	}
	kind, err := domain.ParseChartKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	seed, err := parseSeed(r.URL.Query().Get("seed"))
	if err != nil {
		writeError(w, err)
		return
	}
	count, err := parseCount(r.URL.Query().Get("count"))
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := s.ports.Datasets.Generate(r.Context(), kind, domain.DatasetParams{Seed: seed, Count: count})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse{Kind: kind, Data: data})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.ports.Datasets == nil {
		writeError(w, errNotConfigured)
		return
	}
	seed, err := parseSeed(r.URL.Query().Get("seed"))
	if err != nil {
		writeError(w, err)
		return
	}
	datasets, err := s.ports.Datasets.Dashboard(r.Context(), seed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Seed: seed, Datasets: datasets})
}

func (s *Server) handleListFloats(w http.ResponseWriter, r *http.Request) {
	if s.ports.Floats == nil {
		writeError(w, errNotConfigured)
		return
	}
	floats, err := s.ports.Floats.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if floats == nil {
		floats = []domain.Float{}
	}
	writeJSON(w, http.StatusOK, floatsResponse{Floats: floats, Count: len(floats)})
}

func (s *Server) handleGetFloat(w http.ResponseWriter, r *http.Request) {
	if s.ports.Floats == nil {
		writeError(w, errNotConfigured)
		return
	}
	f, err := s.ports.Floats.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleImportFloats(w http.ResponseWriter, r *http.Request) {
	if s.ports.Floats == nil {
		writeError(w, errNotConfigured)
		return
	}
	body := http.MaxBytesReader(w, r.Body, maxCSVBody)
	n, err := s.ports.Floats.Import(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}

// decodeJSON reads a bounded JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decoding request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// parseSeed parses an optional generator seed. Empty selects the default.
func parseSeed(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: seed must be an unsigned 32-bit integer", domain.ErrInvalidInput)
	}
	return uint32(v), nil
}

// parseCount parses an optional point count. Empty selects the default.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: count must be a non-negative integer", domain.ErrInvalidInput)
	}
	return v, nil
}
