package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alpacahq/bizcal/frontend"
	"github.com/alpacahq/bizcal/frontend/client"
	"github.com/alpacahq/bizcal/loader"
)

const (
	usage   = "query <op> [args]"
	short   = "Query a business calendar"
	long    = "This command answers a business day query against a local calendar file or a running bizcal server"
	example = `bizcal query next 737425 --file ./nyse.csv
bizcal query --url http://localhost:5993 --calendar NYSE -- add 737425 -5`
	fileDesc     = "path of a local calendar file (.csv, .yml, .yaml)"
	urlDesc      = "base url of a bizcal server"
	calendarDesc = "name of the calendar on the server"
	none         = "none"
)

var (
	// Cmd is the query command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Aliases: []string{"q"},
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		RunE:    executeQuery,
	}
	calendarFile string
	serverURL    string
	calendarName string

	errNoSource       = errors.New("one of --file or --url is required")
	errTooManySources = errors.New("--file and --url are mutually exclusive")
	errNoCalendar     = errors.New("--calendar is required with --url")
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVarP(&calendarFile, "file", "f", "", fileDesc)
	Cmd.Flags().StringVarP(&serverURL, "url", "u", "", urlDesc)
	Cmd.Flags().StringVar(&calendarName, "calendar", "", calendarDesc)
}

// source answers queries for one calendar, local or remote. Absent
// results are nil.
type source interface {
	IsBusinessDay(ctx context.Context, o int32) (bool, error)
	Day(ctx context.Context, op string, o int32) (*int32, error)
	AddBusinessDays(ctx context.Context, o, n int32) (*int32, error)
	BusinessDaysInRange(ctx context.Context, start, end int32) ([]int32, error)
	CountBusinessDays(ctx context.Context, start, end int32) (int, error)
	BusinessDayIndex(ctx context.Context, o int32) (*int, error)
	BusinessDayAtIndex(ctx context.Context, i int) (*int32, error)
	Info(ctx context.Context) (*frontend.InfoResponse, error)
}

// dayOps maps the single ordinal ops to their RPC method names.
var dayOps = map[string]string{
	"next":   "NextBusinessDay",
	"prev":   "PrevBusinessDay",
	"ornext": "BusinessDayOrNext",
	"orprev": "BusinessDayOrPrev",
}

func executeQuery(cmd *cobra.Command, args []string) error {
	src, err := openSource(calendarFile, serverURL, calendarName)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	return run(cmd.Context(), cmd.OutOrStdout(), src, args)
}

func openSource(file, url, name string) (source, error) {
	switch {
	case file != "" && url != "":
		return nil, errTooManySources
	case file != "":
		cal, err := loader.LoadFile(file)
		if err != nil {
			return nil, err
		}
		return &localSource{name: file, cal: cal}, nil
	case url != "":
		if name == "" {
			return nil, errNoCalendar
		}
		cl, err := client.NewClient(strings.TrimSuffix(url, "/"))
		if err != nil {
			return nil, err
		}
		return &remoteSource{name: name, cl: cl}, nil
	default:
		return nil, errNoSource
	}
}

// run executes one op and prints its answer to w.
func run(ctx context.Context, w io.Writer, src source, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	op, params := args[0], args[1:]

	if method, ok := dayOps[op]; ok {
		o, err := ordinalArgs(op, params, 1)
		if err != nil {
			return err
		}
		day, err := src.Day(ctx, method, o[0])
		if err != nil {
			return err
		}
		return printDay(w, day)
	}

	switch op {
	case "is":
		o, err := ordinalArgs(op, params, 1)
		if err != nil {
			return err
		}
		ok, err := src.IsBusinessDay(ctx, o[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ok)
		return err
	case "add":
		o, err := ordinalArgs(op, params, 2)
		if err != nil {
			return err
		}
		day, err := src.AddBusinessDays(ctx, o[0], o[1])
		if err != nil {
			return err
		}
		return printDay(w, day)
	case "range":
		o, err := ordinalArgs(op, params, 2)
		if err != nil {
			return err
		}
		days, err := src.BusinessDaysInRange(ctx, o[0], o[1])
		if err != nil {
			return err
		}
		strs := make([]string, len(days))
		for i, d := range days {
			strs[i] = strconv.FormatInt(int64(d), 10)
		}
		_, err = fmt.Fprintln(w, strings.Join(strs, " "))
		return err
	case "count":
		o, err := ordinalArgs(op, params, 2)
		if err != nil {
			return err
		}
		n, err := src.CountBusinessDays(ctx, o[0], o[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, n)
		return err
	case "index":
		o, err := ordinalArgs(op, params, 1)
		if err != nil {
			return err
		}
		idx, err := src.BusinessDayIndex(ctx, o[0])
		if err != nil {
			return err
		}
		if idx == nil {
			_, err = fmt.Fprintln(w, none)
			return err
		}
		_, err = fmt.Fprintln(w, *idx)
		return err
	case "at":
		if len(params) != 1 {
			return fmt.Errorf("%s takes 1 argument, got %d", op, len(params))
		}
		i, err := strconv.Atoi(params[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", params[0], err)
		}
		day, err := src.BusinessDayAtIndex(ctx, i)
		if err != nil {
			return err
		}
		return printDay(w, day)
	case "info":
		if len(params) != 0 {
			return fmt.Errorf("%s takes no arguments, got %d", op, len(params))
		}
		info, err := src.Info(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "calendar: %s\nlen: %d\nfirst: %s\nlast: %s\n",
			info.Calendar, info.Len, formatDay(info.First), formatDay(info.Last))
		return err
	default:
		return fmt.Errorf("unknown op %q", op)
	}
}

func ordinalArgs(op string, params []string, want int) ([]int32, error) {
	if len(params) != want {
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", op, want, len(params))
	}
	out := make([]int32, want)
	for i, p := range params {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid ordinal %q: %w", p, err)
		}
		out[i] = int32(v)
	}
	return out, nil
}

func formatDay(day *int32) string {
	if day == nil {
		return none
	}
	return strconv.FormatInt(int64(*day), 10)
}

func printDay(w io.Writer, day *int32) error {
	_, err := fmt.Fprintln(w, formatDay(day))
	return err
}
