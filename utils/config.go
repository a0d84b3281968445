package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/alpacahq/bizcal/utils/log"
)

var (
	ErrInvalidListenURL   = errors.New("invalid listen url")
	ErrInvalidCalendar    = errors.New("invalid calendar setting")
	ErrDuplicateCalendar  = errors.New("duplicate calendar name")
	ErrInvalidGracePeriod = errors.New("invalid stop grace period")
)

// CalendarSetting describes one calendar to load at startup. Exactly one
// of File and Ordinals is set.
type CalendarSetting struct {
	Name     string
	File     string
	Ordinals []int32
}

type BizcalConfig struct {
	ListenURL       string
	UtilitiesURL    string
	LogLevel        log.Level
	Queryable       bool
	StopGracePeriod time.Duration
	StartTime       time.Time
	Calendars       []*CalendarSetting
}

// ParseConfig parses the YAML configuration and validates it.
func ParseConfig(data []byte) (*BizcalConfig, error) {
	var (
		aux struct {
			ListenURL       string `yaml:"listen_url"`
			ListenPort      string `yaml:"listen_port"`
			UtilitiesURL    string `yaml:"utilities_url"`
			LogLevel        string `yaml:"log_level"`
			Queryable       string `yaml:"queryable"`
			StopGracePeriod int    `yaml:"stop_grace_period"`
			Calendars       []struct {
				Name     string  `yaml:"name"`
				File     string  `yaml:"file"`
				Ordinals []int32 `yaml:"ordinals"`
			} `yaml:"calendars"`
		}
		m = &BizcalConfig{Queryable: true}
	)

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	switch {
	case aux.ListenURL != "":
		m.ListenURL = aux.ListenURL
	case aux.ListenPort != "":
		m.ListenURL = fmt.Sprintf(":%v", aux.ListenPort)
	default:
		return nil, ErrInvalidListenURL
	}
	m.UtilitiesURL = aux.UtilitiesURL

	m.LogLevel = log.ParseLevel(aux.LogLevel)

	if aux.Queryable != "" {
		queryable, err := strconv.ParseBool(aux.Queryable)
		if err != nil {
			log.Error("Invalid value: %v for queryable. Running as queryable...", aux.Queryable)
		} else {
			m.Queryable = queryable
		}
	}

	if aux.StopGracePeriod < 0 {
		return nil, errors.Wrapf(ErrInvalidGracePeriod, "%d", aux.StopGracePeriod)
	}
	m.StopGracePeriod = time.Duration(aux.StopGracePeriod) * time.Second

	seen := map[string]bool{}
	for i, cal := range aux.Calendars {
		name := strings.ToUpper(strings.TrimSpace(cal.Name))
		if name == "" {
			return nil, errors.Wrapf(ErrInvalidCalendar, "calendars[%d]: name is required", i)
		}
		if (cal.File == "") == (cal.Ordinals == nil) {
			return nil, errors.Wrapf(ErrInvalidCalendar, "%s: exactly one of file or ordinals is required", name)
		}
		if seen[name] {
			return nil, errors.Wrap(ErrDuplicateCalendar, name)
		}
		seen[name] = true
		m.Calendars = append(m.Calendars, &CalendarSetting{
			Name:     name,
			File:     cal.File,
			Ordinals: cal.Ordinals,
		})
	}

	return m, nil
}
