package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Ensure FloatService implements the interface.
var _ driving.FloatService = (*FloatService)(nil)

// FloatService manages the float dataset.
type FloatService struct {
	store driven.FloatStore
	seed  driven.SeedSource
}

// NewFloatService creates a float service. seed may be nil.
func NewFloatService(store driven.FloatStore, seed driven.SeedSource) *FloatService {
	return &FloatService{store: store, seed: seed}
}

// EnsureSeeded loads the seed dataset into an empty store and returns the
// number of floats available. A populated store is left alone.
func (s *FloatService) EnsureSeeded(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 || s.seed == nil {
		return n, nil
	}
	floats, err := s.seed.Load()
	if err != nil {
		return 0, fmt.Errorf("load seed: %w", err)
	}
	if err := s.store.ReplaceAll(ctx, floats); err != nil {
		return 0, fmt.Errorf("store seed: %w", err)
	}
	logger.Info("Seeded %d floats", len(floats))
	return len(floats), nil
}

// List returns every float.
func (s *FloatService) List(ctx context.Context) ([]domain.Float, error) {
	return s.store.List(ctx)
}

// Get returns a float by ID.
func (s *FloatService) Get(ctx context.Context, id string) (*domain.Float, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: float id is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Import parses a CSV document and replaces the dataset with it. Nothing
// is stored unless every row parses.
func (s *FloatService) Import(ctx context.Context, r io.Reader) (int, error) {
	floats, err := ParseFloatsCSV(r)
	if err != nil {
		return 0, err
	}
	if err := s.store.ReplaceAll(ctx, floats); err != nil {
		return 0, err
	}
	logger.Info("Imported %d floats", len(floats))
	return len(floats), nil
}

// CSV column names. The first name of each pair wins when both are set.
var (
	colID       = []string{"Float_ID", "id"}
	colLat      = []string{"Latitude", "lat"}
	colLng      = []string{"Longitude", "lng"}
	colLocation = []string{"Location_Reference", "location"}
	colSea      = []string{"sea"}
)

// ParseFloatsCSV reads floats from a CSV document with a header row.
// Empty lines are skipped. A row whose coordinates do not parse fails the
// whole document with domain.ErrInvalidInput naming the float.
func ParseFloatsCSV(r io.Reader) ([]domain.Float, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: CSV document is empty", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var floats []domain.Float
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		if blank(record) {
			continue
		}
		f, err := parseFloatRow(index, record)
		if err != nil {
			return nil, err
		}
		floats = append(floats, f)
	}
	if len(floats) == 0 {
		return nil, fmt.Errorf("%w: CSV document has no float rows", domain.ErrInvalidInput)
	}
	return floats, nil
}

func parseFloatRow(index map[string]int, record []string) (domain.Float, error) {
	get := func(names []string) string {
		for _, name := range names {
			i, ok := index[name]
			if !ok || i >= len(record) {
				continue
			}
			if v := strings.TrimSpace(record[i]); v != "" {
				return v
			}
		}
		return ""
	}

	id := get(colID)
	lat, latErr := strconv.ParseFloat(get(colLat), 64)
	lng, lngErr := strconv.ParseFloat(get(colLng), 64)
	if latErr != nil || lngErr != nil || math.IsNaN(lat) || math.IsNaN(lng) {
		return domain.Float{}, fmt.Errorf("%w: Invalid coordinate data for float: %s", domain.ErrInvalidInput, id)
	}

	f := domain.Float{
		ID:       id,
		Lat:      lat,
		Lng:      lng,
		Location: get(colLocation),
		Sea:      get(colSea),
	}
	if f.Sea == "" {
		f.Sea = domain.SeaFromLocation(f.Location)
	}
	if err := f.Validate(); err != nil {
		return domain.Float{}, err
	}
	return f, nil
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
