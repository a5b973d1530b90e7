package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

func TestSource_LoadEmbedded(t *testing.T) {
	floats, err := NewSource("").Load()

	require.NoError(t, err)
	require.NotEmpty(t, floats)
	seas := map[string]int{}
	for _, f := range floats {
		assert.NoError(t, f.Validate())
		seas[f.Sea]++
	}
	assert.Positive(t, seas[domain.SeaArabian])
	assert.Positive(t, seas[domain.SeaBengal])
	assert.Equal(t, "2902300", floats[0].ID)
}

func TestSource_LoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floats.json")
	content := `{"argoFloats": [` +
		`{"id": "A1", "lat": 12.5, "lng": 85.0, "location": "Bay of Bengal, central"},` +
		`{"id": "A2", "lat": 17.0, "lng": 64.0, "location": "Arabian Sea west", "sea": "Arabian Sea"}` +
		`]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	floats, err := NewSource(path).Load()

	require.NoError(t, err)
	require.Len(t, floats, 2)
	assert.Equal(t, domain.SeaBengal, floats[0].Sea)
	assert.Equal(t, domain.SeaArabian, floats[1].Sea)
}

func TestSource_LoadMissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing.yaml")).Load()

	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "argoFloats: [unclosed"},
		{"missing id", "argoFloats:\n  - lat: 1\n    lng: 2\n"},
		{"latitude out of range", "argoFloats:\n  - id: x\n    lat: 95\n    lng: 2\n"},
		{"duplicate id", "argoFloats:\n  - id: x\n    lat: 1\n    lng: 2\n  - id: x\n    lat: 3\n    lng: 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestParse_DerivesSea(t *testing.T) {
	floats, err := Parse([]byte("argoFloats:\n  - id: x\n    lat: 18\n    lng: 66\n    location: Northern ARABIAN Sea\n"))

	require.NoError(t, err)
	assert.Equal(t, domain.SeaArabian, floats[0].Sea)
}

func TestDefaultCanned(t *testing.T) {
	canned, err := DefaultCanned()
	require.NoError(t, err)

	questions := canned.Questions()
	assert.Len(t, questions, 25)
	assert.Equal(t, "What is an Argo float?", questions[0])

	answer, ok := canned.Lookup("  what is an ARGO float?  ")
	assert.True(t, ok)
	assert.Contains(t, answer, "robotic instrument")

	_, ok = canned.Lookup("What is an Argo float")
	assert.False(t, ok)
}

func TestParseCanned_Rejects(t *testing.T) {
	_, err := ParseCanned([]byte("responses:\n  - question: q\n    answer: ''\n"))
	assert.Error(t, err)

	_, err = ParseCanned([]byte("responses:\n  - question: Q\n    answer: a\n  - question: q\n    answer: b\n"))
	assert.Error(t, err)
}

func TestCanned_QuestionsReturnsCopy(t *testing.T) {
	canned, err := ParseCanned([]byte("responses:\n  - question: Q\n    answer: a\n"))
	require.NoError(t, err)

	qs := canned.Questions()
	qs[0] = "changed"

	assert.Equal(t, []string{"Q"}, canned.Questions())
}
