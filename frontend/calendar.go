package frontend

import (
	"net/http"
	"sync/atomic"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/catalog"
	"github.com/alpacahq/bizcal/utils"
)

// CalendarService exposes business calendar queries over RPC. Queries with
// no answer reply with a nil field, they do not fail.
type CalendarService struct {
	catalogDir *catalog.Directory
}

// NewCalendarService serves the calendars registered in catDir.
func NewCalendarService(catDir *catalog.Directory) *CalendarService {
	return &CalendarService{catalogDir: catDir}
}

// DayRequest is the parameter of the single-ordinal queries.
type DayRequest struct {
	Calendar string `msgpack:"calendar" json:"calendar"`
	Ordinal  int32  `msgpack:"ordinal" json:"ordinal"`
}

// OffsetRequest is the parameter of AddBusinessDays. N may be negative.
type OffsetRequest struct {
	Calendar string `msgpack:"calendar" json:"calendar"`
	Ordinal  int32  `msgpack:"ordinal" json:"ordinal"`
	N        int32  `msgpack:"n" json:"n"`
}

// RangeRequest selects the inclusive range [Start, End].
type RangeRequest struct {
	Calendar string `msgpack:"calendar" json:"calendar"`
	Start    int32  `msgpack:"start" json:"start"`
	End      int32  `msgpack:"end" json:"end"`
}

// IndexRequest is the parameter of BusinessDayAtIndex.
type IndexRequest struct {
	Calendar string `msgpack:"calendar" json:"calendar"`
	Index    int    `msgpack:"index" json:"index"`
}

// CalendarRequest names the calendar Info reports on.
type CalendarRequest struct {
	Calendar string `msgpack:"calendar" json:"calendar"`
}

// ListCalendarsRequest takes no parameters.
type ListCalendarsRequest struct{}

// BoolResponse is the reply of IsBusinessDay.
type BoolResponse struct {
	Value bool `msgpack:"value" json:"value"`
}

// DayResponse carries an optional ordinal; nil means there is no such day.
type DayResponse struct {
	Ordinal *int32 `msgpack:"ordinal" json:"ordinal"`
}

// RangeResponse holds business days in ascending order.
type RangeResponse struct {
	Ordinals []int32 `msgpack:"ordinals" json:"ordinals"`
}

// CountResponse is the reply of CountBusinessDays.
type CountResponse struct {
	Count int `msgpack:"count" json:"count"`
}

// IndexResponse carries an optional rank; nil means the day is not a business day.
type IndexResponse struct {
	Index *int `msgpack:"index" json:"index"`
}

// InfoResponse describes a calendar under its registered name. First and
// Last are nil for an empty calendar.
type InfoResponse struct {
	Calendar string `msgpack:"calendar" json:"calendar"`
	Len      int    `msgpack:"len" json:"len"`
	IsEmpty  bool   `msgpack:"is_empty" json:"is_empty"`
	First    *int32 `msgpack:"first" json:"first"`
	Last     *int32 `msgpack:"last" json:"last"`
}

// ListCalendarsResponse holds the registered names in sorted order.
type ListCalendarsResponse struct {
	Calendars []string `msgpack:"calendars" json:"calendars"`
	Version   string   `msgpack:"version" json:"version"`
}

func optionalDay(day int32, ok bool) *int32 {
	if !ok {
		return nil
	}
	return &day
}

func (s *CalendarService) lookup(name string) (*calendar.BusinessCalendar, error) {
	if atomic.LoadUint32(&Queryable) == 0 {
		return nil, queryableError
	}
	return s.catalogDir.Get(name)
}

// ListCalendars returns the names of all served calendars and the server build.
func (s *CalendarService) ListCalendars(_ *http.Request, args *ListCalendarsRequest,
	response *ListCalendarsResponse,
) error {
	if atomic.LoadUint32(&Queryable) == 0 {
		return queryableError
	}
	response.Calendars = s.catalogDir.Names()
	response.Version = utils.GitHash
	return nil
}

// Info reports the size and bounds of a calendar.
func (s *CalendarService) Info(_ *http.Request, args *CalendarRequest, response *InfoResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Calendar = catalog.CanonicalName(args.Calendar)
	response.Len = cal.Len()
	response.IsEmpty = cal.IsEmpty()
	response.First = optionalDay(cal.First())
	response.Last = optionalDay(cal.Last())
	return nil
}

func (s *CalendarService) IsBusinessDay(_ *http.Request, args *DayRequest, response *BoolResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Value = cal.IsBusinessDay(args.Ordinal)
	return nil
}

// dayQuery runs one of the calendar's single ordinal navigation methods.
func (s *CalendarService) dayQuery(args *DayRequest, response *DayResponse,
	query func(*calendar.BusinessCalendar, int32) (int32, bool),
) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Ordinal = optionalDay(query(cal, args.Ordinal))
	return nil
}

func (s *CalendarService) NextBusinessDay(_ *http.Request, args *DayRequest, response *DayResponse) error {
	return s.dayQuery(args, response, (*calendar.BusinessCalendar).NextBusinessDay)
}

func (s *CalendarService) PrevBusinessDay(_ *http.Request, args *DayRequest, response *DayResponse) error {
	return s.dayQuery(args, response, (*calendar.BusinessCalendar).PrevBusinessDay)
}

func (s *CalendarService) BusinessDayOrNext(_ *http.Request, args *DayRequest, response *DayResponse) error {
	return s.dayQuery(args, response, (*calendar.BusinessCalendar).BusinessDayOrNext)
}

func (s *CalendarService) BusinessDayOrPrev(_ *http.Request, args *DayRequest, response *DayResponse) error {
	return s.dayQuery(args, response, (*calendar.BusinessCalendar).BusinessDayOrPrev)
}

func (s *CalendarService) AddBusinessDays(_ *http.Request, args *OffsetRequest, response *DayResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Ordinal = optionalDay(cal.AddBusinessDays(args.Ordinal, args.N))
	return nil
}

func (s *CalendarService) BusinessDaysInRange(_ *http.Request, args *RangeRequest, response *RangeResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Ordinals = cal.BusinessDaysInRange(args.Start, args.End)
	return nil
}

func (s *CalendarService) CountBusinessDays(_ *http.Request, args *RangeRequest, response *CountResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Count = cal.CountBusinessDays(args.Start, args.End)
	return nil
}

func (s *CalendarService) BusinessDayIndex(_ *http.Request, args *DayRequest, response *IndexResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	if idx, ok := cal.BusinessDayIndex(args.Ordinal); ok {
		response.Index = &idx
	}
	return nil
}

func (s *CalendarService) BusinessDayAtIndex(_ *http.Request, args *IndexRequest, response *DayResponse) error {
	if args == nil {
		return argsNilError
	}
	cal, err := s.lookup(args.Calendar)
	if err != nil {
		return err
	}
	response.Ordinal = optionalDay(cal.BusinessDayAtIndex(args.Index))
	return nil
}
