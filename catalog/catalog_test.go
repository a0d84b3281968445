package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/catalog"
	"github.com/alpacahq/bizcal/utils"
)

func TestRegisterAndGet(t *testing.T) {
	t.Parallel()
	d := catalog.NewDirectory()
	nyse := calendar.New([]int32{1, 2, 3})
	d.Register("nyse", nyse)

	got, err := d.Get("NYSE")
	require.NoError(t, err)
	assert.Same(t, nyse, got)

	got, err = d.Get(" Nyse ")
	require.NoError(t, err)
	assert.Same(t, nyse, got)

	replacement := calendar.New([]int32{4})
	d.Register("NYSE", replacement)
	got, err = d.Get("nyse")
	require.NoError(t, err)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, d.Len())
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "NYSE", catalog.CanonicalName(" nyse "))
	assert.Equal(t, "NYSE", catalog.CanonicalName("NYSE"))

	d := catalog.NewDirectory()
	d.Register(" Lse", calendar.New([]int32{1}))
	assert.Equal(t, []string{catalog.CanonicalName("lse")}, d.Names())
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()
	d := catalog.NewDirectory()

	_, err := d.Get("INVALID_EXCHANGE")
	var unknown catalog.UnknownCalendarError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, catalog.UnknownCalendarError("INVALID_EXCHANGE"), unknown)
	assert.Contains(t, err.Error(), "Unknown calendar")
}

func TestNamesAndSizes(t *testing.T) {
	t.Parallel()
	d := catalog.NewDirectory()
	d.Register("lse", calendar.New([]int32{1, 2}))
	d.Register("NYSE", calendar.New([]int32{1, 2, 3}))
	d.Register("empty", calendar.New(nil))

	assert.Equal(t, []string{"EMPTY", "LSE", "NYSE"}, d.Names())
	assert.Equal(t, map[string]int{"EMPTY": 0, "LSE": 2, "NYSE": 3}, d.Sizes())
}

func TestNewDirectoryFromSettings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nyse.csv"), []byte("ordinal\n3\n1\n2\n"), 0o600))

	d, err := catalog.NewDirectoryFromSettings([]*utils.CalendarSetting{
		{Name: "NYSE", File: "nyse.csv"},
		{Name: "TEST", Ordinals: []int32{9, 3, 1, 7, 5, 3}},
	}, dir)
	require.NoError(t, err)

	nyse, err := d.Get("NYSE")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, nyse.Ordinals())

	test, err := d.Get("TEST")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 5, 7, 9}, test.Ordinals())
}

func TestNewDirectoryFromSettings_LoadError(t *testing.T) {
	t.Parallel()
	_, err := catalog.NewDirectoryFromSettings([]*utils.CalendarSetting{
		{Name: "MISSING", File: "missing.csv"},
	}, t.TempDir())

	var loadErr *catalog.ErrCalendarLoad
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "MISSING")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()
	d := catalog.NewDirectory()
	cal := calendar.New([]int32{1})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Register("A", cal)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = d.Get("A")
				_ = d.Names()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"A"}, d.Names())
}
