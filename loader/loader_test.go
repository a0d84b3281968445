package loader_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/loader"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    []int32
		wantErr bool
	}{
		"ordinals":       {input: "ordinal\n9\n3\n1\n3\n", want: []int32{9, 3, 1, 3}},
		"extra columns":  {input: "ordinal,note\n5,holiday eve\n-2,\n", want: []int32{5, -2}},
		"header only":    {input: "ordinal\n", want: []int32{}},
		"empty":          {input: "", want: []int32{}},
		"missing column": {input: "day\n1\n", wantErr: true},
		"not an integer": {input: "ordinal\nmonday\n", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := loader.ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	t.Parallel()
	_, err := loader.ReadCSV(strings.NewReader("date\n2024-01-02\n"))
	assert.True(t, errors.Is(err, loader.ErrMissingColumn))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	cal := calendar.New([]int32{7, 1, 3, 1})

	var buf bytes.Buffer
	require.NoError(t, loader.WriteCSV(&buf, cal))
	assert.Equal(t, "ordinal\n1\n3\n7\n", buf.String())

	ordinals, err := loader.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, cal.Ordinals(), calendar.New(ordinals).Ordinals())
}

func TestReadYAML(t *testing.T) {
	t.Parallel()
	got, err := loader.ReadYAML(strings.NewReader("ordinals: [5, 1, 3]\n"))
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 1, 3}, got)

	_, err = loader.ReadYAML(strings.NewReader("days: [1]\n"))
	assert.Error(t, err)

	_, err = loader.ReadYAML(strings.NewReader("ordinals: [a, b]\n"))
	assert.Error(t, err)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	cal := calendar.New([]int32{3, 1})

	var buf bytes.Buffer
	require.NoError(t, loader.WriteYAML(&buf, cal))

	ordinals, err := loader.ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3}, ordinals)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "nyse.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("ordinal\n9\n3\n1\n7\n5\n3\n"), 0o600))
	yamlPath := filepath.Join(dir, "custom.YAML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("ordinals:\n  - 2\n  - 4\n"), 0o600))
	txtPath := filepath.Join(dir, "days.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("1\n"), 0o600))

	cal, err := loader.LoadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 5, 7, 9}, cal.Ordinals())

	cal, err = loader.LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 4}, cal.Ordinals())

	_, err = loader.LoadFile(txtPath)
	assert.True(t, errors.Is(err, loader.ErrUnsupportedFormat))

	_, err = loader.LoadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
