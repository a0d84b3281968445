// Package calendar provides a business day calendar, with which you can
// check if a day is a business day and step across business days.
// Days are identified by int32 ordinals (e.g. julian day numbers). The
// package has no opinion on the encoding or on why a day is a business
// day; the caller supplies the finished list of ordinals.
package calendar

import (
	"sort"
)

// BusinessCalendar is an immutable, sorted set of business day ordinals.
// It is safe for concurrent use by multiple goroutines.
type BusinessCalendar struct {
	days []int32
}

// New creates a calendar from ordinals in any order, possibly with duplicates.
// The input slice is not retained.
func New(ordinals []int32) *BusinessCalendar {
	days := make([]int32, len(ordinals))
	copy(days, ordinals)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	// dedup in place
	n := 0
	for i, d := range days {
		if i > 0 && d == days[n-1] {
			continue
		}
		days[n] = d
		n++
	}
	return &BusinessCalendar{days: days[:n:n]}
}

// insertionPoint returns the number of stored ordinals strictly less than o.
// If o is stored, this is its rank.
func (c *BusinessCalendar) insertionPoint(o int32) int {
	return sort.Search(len(c.days), func(i int) bool { return c.days[i] >= o })
}

// upperBound returns the number of stored ordinals less than or equal to o.
func (c *BusinessCalendar) upperBound(o int32) int {
	i := c.insertionPoint(o)
	if i < len(c.days) && c.days[i] == o {
		i++
	}
	return i
}

func (c *BusinessCalendar) at(i int) (int32, bool) {
	if i < 0 || i >= len(c.days) {
		return 0, false
	}
	return c.days[i], true
}

// Len returns the number of business days in the calendar.
func (c *BusinessCalendar) Len() int {
	return len(c.days)
}

// IsEmpty reports whether the calendar holds no business days.
func (c *BusinessCalendar) IsEmpty() bool {
	return len(c.days) == 0
}

// IsBusinessDay checks if o is a business day.
func (c *BusinessCalendar) IsBusinessDay(o int32) bool {
	i := c.insertionPoint(o)
	return i < len(c.days) && c.days[i] == o
}

// NextBusinessDay returns the first business day strictly after o,
// whether or not o is itself a business day.
func (c *BusinessCalendar) NextBusinessDay(o int32) (int32, bool) {
	return c.at(c.upperBound(o))
}

// PrevBusinessDay returns the last business day strictly before o.
func (c *BusinessCalendar) PrevBusinessDay(o int32) (int32, bool) {
	return c.at(c.insertionPoint(o) - 1)
}

// BusinessDayOrNext returns o if it is a business day, otherwise the
// next business day.
func (c *BusinessCalendar) BusinessDayOrNext(o int32) (int32, bool) {
	return c.at(c.insertionPoint(o))
}

// BusinessDayOrPrev returns o if it is a business day, otherwise the
// previous business day.
func (c *BusinessCalendar) BusinessDayOrPrev(o int32) (int32, bool) {
	return c.at(c.upperBound(o) - 1)
}

// AddBusinessDays steps n business days from o. n may be negative.
//
// When o is a business day the steps are counted from o itself. Otherwise
// the anchor is the first business day after o, in both directions: with
// n = 0 the result is the next business day, with n = 1 the one after it,
// and with n = -1 the business day immediately before o.
func (c *BusinessCalendar) AddBusinessDays(o int32, n int32) (int32, bool) {
	pos := int64(c.insertionPoint(o)) + int64(n)
	if pos < 0 || pos >= int64(len(c.days)) {
		return 0, false
	}
	return c.days[pos], true
}

// BusinessDayIndex returns the zero-based position of o in the calendar.
// It returns false if o is not a business day.
func (c *BusinessCalendar) BusinessDayIndex(o int32) (int, bool) {
	i := c.insertionPoint(o)
	if i < len(c.days) && c.days[i] == o {
		return i, true
	}
	return 0, false
}

// BusinessDayAtIndex is the inverse of BusinessDayIndex.
func (c *BusinessCalendar) BusinessDayAtIndex(index int) (int32, bool) {
	return c.at(index)
}

// bounds returns the half-open position range of business days in [start, end].
func (c *BusinessCalendar) bounds(start, end int32) (lo, hi int) {
	if start > end {
		return 0, 0
	}
	return c.insertionPoint(start), c.upperBound(end)
}

// BusinessDaysInRange returns the business days between start and end,
// both inclusive, in ascending order. The returned slice is owned by the caller.
func (c *BusinessCalendar) BusinessDaysInRange(start, end int32) []int32 {
	lo, hi := c.bounds(start, end)
	out := make([]int32, hi-lo)
	copy(out, c.days[lo:hi])
	return out
}

// CountBusinessDays returns len(c.BusinessDaysInRange(start, end)) without
// building the slice.
func (c *BusinessCalendar) CountBusinessDays(start, end int32) int {
	lo, hi := c.bounds(start, end)
	return hi - lo
}

// First returns the earliest business day.
func (c *BusinessCalendar) First() (int32, bool) {
	return c.at(0)
}

// Last returns the latest business day.
func (c *BusinessCalendar) Last() (int32, bool) {
	return c.at(len(c.days) - 1)
}

// Ordinals returns a copy of all business days in ascending order.
func (c *BusinessCalendar) Ordinals() []int32 {
	out := make([]int32, len(c.days))
	copy(out, c.days)
	return out
}
