package catalog

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/loader"
	"github.com/alpacahq/bizcal/utils"
	"github.com/alpacahq/bizcal/utils/log"
)

// Directory holds business calendars by name. Names are case-insensitive.
type Directory struct {
	sync.RWMutex

	calendars map[string]*calendar.BusinessCalendar
}

func NewDirectory() *Directory {
	return &Directory{calendars: map[string]*calendar.BusinessCalendar{}}
}

// NewDirectoryFromSettings builds a Directory from the calendars in the config.
// Relative file paths are resolved against baseDir.
func NewDirectoryFromSettings(settings []*utils.CalendarSetting, baseDir string) (*Directory, error) {
	d := NewDirectory()
	for _, s := range settings {
		var cal *calendar.BusinessCalendar
		if s.File != "" {
			path := s.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			var err error
			cal, err = loader.LoadFile(path)
			if err != nil {
				return nil, &ErrCalendarLoad{name: s.Name, err: err}
			}
		} else {
			cal = calendar.New(s.Ordinals)
		}
		log.Info("loaded calendar %s with %d business days", s.Name, cal.Len())
		d.Register(s.Name, cal)
	}
	return d, nil
}

// CanonicalName returns the name a calendar is registered under.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Register adds cal under name, replacing any calendar already registered there.
func (d *Directory) Register(name string, cal *calendar.BusinessCalendar) {
	d.Lock()
	defer d.Unlock()
	d.calendars[CanonicalName(name)] = cal
}

// Get returns the calendar registered under name.
func (d *Directory) Get(name string) (*calendar.BusinessCalendar, error) {
	d.RLock()
	defer d.RUnlock()
	cal, ok := d.calendars[CanonicalName(name)]
	if !ok {
		return nil, UnknownCalendarError(name)
	}
	return cal, nil
}

// Names returns the registered names in sorted order.
func (d *Directory) Names() []string {
	d.RLock()
	defer d.RUnlock()
	names := make([]string, 0, len(d.calendars))
	for name := range d.calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Directory) Len() int {
	d.RLock()
	defer d.RUnlock()
	return len(d.calendars)
}

// Sizes returns the number of business days of every calendar by name.
func (d *Directory) Sizes() map[string]int {
	d.RLock()
	defer d.RUnlock()
	sizes := make(map[string]int, len(d.calendars))
	for name, cal := range d.calendars {
		sizes[name] = cal.Len()
	}
	return sizes
}
