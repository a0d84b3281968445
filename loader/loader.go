// Package loader reads and writes the ordinal lists business calendars are
// built from. CSV files carry one ordinal per row under an "ordinal"
// header, YAML files a single "ordinals" sequence.
package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/alpacahq/bizcal/calendar"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported calendar file format")
	ErrMissingColumn     = errors.New(`csv header has no "ordinal" column`)
)

const ordinalColumn = "ordinal"

// OrdinalRow is a CSV record of a calendar file.
type OrdinalRow struct {
	Ordinal int32 `csv:"ordinal"`
}

type yamlDocument struct {
	Ordinals []int32 `yaml:"ordinals"`
}

// ReadCSV decodes ordinals from CSV. The header row must name an "ordinal" column.
func ReadCSV(r io.Reader) ([]int32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv ordinals")
	}

	// gocsv leaves fields without a matching column at their zero value
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return []int32{}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}
	if !hasColumn(header, ordinalColumn) {
		return nil, ErrMissingColumn
	}

	var rows []*OrdinalRow
	if err := gocsv.Unmarshal(bytes.NewReader(data), &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode csv ordinals")
	}
	ordinals := make([]int32, 0, len(rows))
	for _, row := range rows {
		ordinals = append(ordinals, row.Ordinal)
	}
	return ordinals, nil
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

// WriteCSV encodes the calendar's ordinals in ascending order, readable by ReadCSV.
func WriteCSV(w io.Writer, cal *calendar.BusinessCalendar) error {
	days := cal.Ordinals()
	rows := make([]*OrdinalRow, len(days))
	for i, d := range days {
		rows[i] = &OrdinalRow{Ordinal: d}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "failed to encode csv ordinals")
	}
	return nil
}

// ReadYAML decodes ordinals from a YAML document with an "ordinals" key.
func ReadYAML(r io.Reader) ([]int32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read yaml ordinals")
	}
	var doc yamlDocument
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode yaml ordinals")
	}
	return doc.Ordinals, nil
}

// WriteYAML encodes the calendar's ordinals in ascending order, readable by ReadYAML.
func WriteYAML(w io.Writer, cal *calendar.BusinessCalendar) error {
	data, err := yaml.Marshal(yamlDocument{Ordinals: cal.Ordinals()})
	if err != nil {
		return errors.Wrap(err, "failed to encode yaml ordinals")
	}
	_, err = w.Write(data)
	return err
}

// LoadFile builds a calendar from a .csv, .yml or .yaml file.
func LoadFile(path string) (*calendar.BusinessCalendar, error) {
	var read func(io.Reader) ([]int32, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = ReadCSV
	case ".yml", ".yaml":
		read = ReadYAML
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open calendar file %s", path)
	}
	defer f.Close()

	ordinals, err := read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return calendar.New(ordinals), nil
}
