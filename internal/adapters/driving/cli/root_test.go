package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "bluequery", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)
	assert.Equal(t, "false", v.DefValue)

	dir := rootCmd.PersistentFlags().Lookup("config-dir")
	require.NotNil(t, dir)
	assert.Equal(t, "", dir.DefValue)
}

func TestRootCmd_HasCommands(t *testing.T) {
	want := []string{
		"ask", "chat", "report", "snapshot", "insights", "visualize", "learn",
		"data", "floats", "serve", "mcp", "settings", "version",
	}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "missing command %q", name)
	}
}

func TestExecute_BootstrapAndCleanup(t *testing.T) {
	t.Cleanup(resetCLI)

	var gotDir string
	cleaned := false
	SetBootstrap(func(_ context.Context, dir string) (*Services, func() error, error) {
		gotDir = dir
		return &Services{Floats: &MockFloatService{Floats: sampleFloats()}}, func() error {
			cleaned = true
			return nil
		}, nil
	})

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"floats", "list", "--config-dir", "/tmp/bq-test"})
	err := Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/tmp/bq-test", gotDir)
	assert.True(t, cleaned)
	assert.Nil(t, cleanup)
}

func TestExecute_BootstrapError(t *testing.T) {
	t.Cleanup(resetCLI)
	SetBootstrap(func(context.Context, string) (*Services, func() error, error) {
		return nil, nil, errors.New("no config")
	})

	_, err := execute(t, "", "floats", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting bluequery")
	assert.Contains(t, err.Error(), "no config")
}

func TestExecute_VersionSkipsBootstrap(t *testing.T) {
	t.Cleanup(resetCLI)
	SetBootstrap(func(context.Context, string) (*Services, func() error, error) {
		return nil, nil, errors.New("should not run")
	})

	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "bluequery version")
}

func TestExecute_InjectedServicesSkipBootstrap(t *testing.T) {
	setupTestServices(t)
	SetBootstrap(func(context.Context, string) (*Services, func() error, error) {
		return nil, nil, errors.New("should not run")
	})

	_, err := execute(t, "", "floats", "list")

	assert.NoError(t, err)
}

func TestCommands_WithoutServices(t *testing.T) {
	t.Cleanup(resetCLI)

	_, err := execute(t, "", "floats", "list")

	assert.ErrorIs(t, err, errNoServices)
}

func TestNeedsServices(t *testing.T) {
	assert.False(t, needsServices(versionCmd))
	assert.True(t, needsServices(askCmd))
	assert.True(t, needsServices(mcpServeCmd))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Arabian Sea Overview", "arabian-sea-overview"},
		{"  Salinity: 2024/25!  ", "salinity-2024-25"},
		{"", "bluequery-report"},
		{"???", "bluequery-report"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, fileName(tt.title))
		})
	}
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")

	got, err := writeDocument(path, samplePDF())

	require.NoError(t, err)
	assert.Equal(t, path, got)
	requireFile(t, path, samplePDF().Data)
}

func TestWriteDocument_DefaultName(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := writeDocument("", samplePDF())

	require.NoError(t, err)
	assert.Equal(t, "arabian-sea-overview.pdf", got)
	_, err = os.Stat(got)
	assert.NoError(t, err)
}

func TestWriteDocument_Empty(t *testing.T) {
	_, err := writeDocument("x.pdf", &domain.Document{})

	assert.ErrorIs(t, err, domain.ErrNoReportContent)
}
