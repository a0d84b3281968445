package query

import (
	"context"
	"fmt"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/frontend"
	"github.com/alpacahq/bizcal/frontend/client"
)

type localSource struct {
	name string
	cal  *calendar.BusinessCalendar
}

func optional(day int32, ok bool) *int32 {
	if !ok {
		return nil
	}
	return &day
}

func (s *localSource) IsBusinessDay(_ context.Context, o int32) (bool, error) {
	return s.cal.IsBusinessDay(o), nil
}

func (s *localSource) Day(_ context.Context, op string, o int32) (*int32, error) {
	var query func(*calendar.BusinessCalendar, int32) (int32, bool)
	switch op {
	case "NextBusinessDay":
		query = (*calendar.BusinessCalendar).NextBusinessDay
	case "PrevBusinessDay":
		query = (*calendar.BusinessCalendar).PrevBusinessDay
	case "BusinessDayOrNext":
		query = (*calendar.BusinessCalendar).BusinessDayOrNext
	case "BusinessDayOrPrev":
		query = (*calendar.BusinessCalendar).BusinessDayOrPrev
	default:
		return nil, fmt.Errorf("unknown day query %s", op)
	}
	return optional(query(s.cal, o)), nil
}

func (s *localSource) AddBusinessDays(_ context.Context, o, n int32) (*int32, error) {
	return optional(s.cal.AddBusinessDays(o, n)), nil
}

func (s *localSource) BusinessDaysInRange(_ context.Context, start, end int32) ([]int32, error) {
	return s.cal.BusinessDaysInRange(start, end), nil
}

func (s *localSource) CountBusinessDays(_ context.Context, start, end int32) (int, error) {
	return s.cal.CountBusinessDays(start, end), nil
}

func (s *localSource) BusinessDayIndex(_ context.Context, o int32) (*int, error) {
	idx, ok := s.cal.BusinessDayIndex(o)
	if !ok {
		return nil, nil
	}
	return &idx, nil
}

func (s *localSource) BusinessDayAtIndex(_ context.Context, i int) (*int32, error) {
	return optional(s.cal.BusinessDayAtIndex(i)), nil
}

func (s *localSource) Info(_ context.Context) (*frontend.InfoResponse, error) {
	first, firstOK := s.cal.First()
	last, lastOK := s.cal.Last()
	return &frontend.InfoResponse{
		Calendar: s.name,
		Len:      s.cal.Len(),
		IsEmpty:  s.cal.IsEmpty(),
		First:    optional(first, firstOK),
		Last:     optional(last, lastOK),
	}, nil
}

// remoteSource forwards every query to a bizcal server.
type remoteSource struct {
	name string
	cl   *client.Client
}

func (s *remoteSource) IsBusinessDay(ctx context.Context, o int32) (bool, error) {
	return s.cl.IsBusinessDay(ctx, s.name, o)
}

func (s *remoteSource) Day(ctx context.Context, op string, o int32) (*int32, error) {
	return s.cl.Day(ctx, op, s.name, o)
}

func (s *remoteSource) AddBusinessDays(ctx context.Context, o, n int32) (*int32, error) {
	return s.cl.AddBusinessDays(ctx, s.name, o, n)
}

func (s *remoteSource) BusinessDaysInRange(ctx context.Context, start, end int32) ([]int32, error) {
	return s.cl.BusinessDaysInRange(ctx, s.name, start, end)
}

func (s *remoteSource) CountBusinessDays(ctx context.Context, start, end int32) (int, error) {
	return s.cl.CountBusinessDays(ctx, s.name, start, end)
}

func (s *remoteSource) BusinessDayIndex(ctx context.Context, o int32) (*int, error) {
	return s.cl.BusinessDayIndex(ctx, s.name, o)
}

func (s *remoteSource) BusinessDayAtIndex(ctx context.Context, i int) (*int32, error) {
	return s.cl.BusinessDayAtIndex(ctx, s.name, i)
}

func (s *remoteSource) Info(ctx context.Context) (*frontend.InfoResponse, error) {
	return s.cl.Info(ctx, s.name)
}
