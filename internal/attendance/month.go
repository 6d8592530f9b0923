package attendance

import (
	"fmt"
	"time"
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "2006-01" key.
func ParseMonth(key string) (Month, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", key, err)
	}
	return MonthOf(t), nil
}

// DaysIn returns the number of days in the given Gregorian month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return DaysIn(m.Year, m.Month)
}

// First returns midnight UTC on the first day of m.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Shift returns the month delta months away from m.
func (m Month) Shift(delta int) Month {
	return MonthOf(m.First().AddDate(0, delta, 0))
}

// After reports whether m is strictly later than other.
func (m Month) After(other Month) bool {
	return m.First().After(other.First())
}

// Key formats m as "2006-01".
func (m Month) Key() string {
	return m.First().Format("2006-01")
}

// Label formats m as "Jan 2006".
func (m Month) Label() string {
	return m.First().Format("Jan 2006")
}

// LoadTicket tags a load request with the month and generation it targets.
type LoadTicket struct {
	Generation uint64
	Month      Month
}

// MonthContext tracks the active month and the generation counter used to
// discard loads that resolve after a newer month change.
type MonthContext struct {
	month      Month
	generation uint64
	now        func() time.Time
}

// NewMonthContext starts at the month containing now().
func NewMonthContext(now func() time.Time) *MonthContext {
	if now == nil {
		now = time.Now
	}
	return &MonthContext{month: MonthOf(now()), now: now}
}

// Month returns the active month.
func (c *MonthContext) Month() Month {
	return c.month
}

// Days returns the number of days in the active month.
func (c *MonthContext) Days() int {
	return c.month.Days()
}

// IsFuture reports whether the active month is after the current calendar month.
func (c *MonthContext) IsFuture() bool {
	return c.month.After(MonthOf(c.now()))
}

// Generation returns the live generation tag.
func (c *MonthContext) Generation() uint64 {
	return c.generation
}

// Current reports whether t still targets the live month and generation.
func (c *MonthContext) Current(t LoadTicket) bool {
	return t.Generation == c.generation && t.Month == c.month
}

// set switches month and issues a ticket for the first load.
func (c *MonthContext) set(m Month) LoadTicket {
	c.month = m
	return c.next()
}

// next bumps the generation without changing month, superseding any load in flight.
func (c *MonthContext) next() LoadTicket {
	c.generation++
	return LoadTicket{Generation: c.generation, Month: c.month}
}
