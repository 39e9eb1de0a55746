// =============================================================================
// Sales Reporter - Commands
// =============================================================================
//
// A Command describes which report to compute and with what parameters. The
// set of commands is closed: Command is a sealed interface implemented only by
// the four types in this file, and the report engine switches over them.
//
// COMMAND GRAMMAR (case-sensitive):
//   time [HH:MM-HH:MM]            revenue per hour, optionally restricted
//   Daily <shop name...>          revenue per weekday for one shop
//   city -money|-items -max|-min  city or cities with the extreme metric
//   full                          every transaction, one file per shop
//
// =============================================================================

package command

import (
	"fmt"
	"strings"
)

// =============================================================================
// COMMAND KINDS
// =============================================================================

// Kind identifies a command variant.
type Kind int

const (
	// KindTime is the hourly revenue report.
	KindTime Kind = iota + 1
	// KindDailyRevenue is the per-weekday revenue report for one shop.
	KindDailyRevenue
	// KindCityExtreme is the extreme-city report.
	KindCityExtreme
	// KindFull is the per-shop transaction dump.
	KindFull
)

// String returns the lower-case name of the kind, used in file names and logs.
func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindDailyRevenue:
		return "daily"
	case KindCityExtreme:
		return "city"
	case KindFull:
		return "full"
	default:
		return "unknown"
	}
}

// Command is a parsed, validated report request.
type Command interface {
	// Kind returns the variant tag.
	Kind() Kind

	// String returns the command in its canonical token form.
	String() string

	sealed()
}

// =============================================================================
// TIME
// =============================================================================

// HourRange is a half-open range of hours on a 24-hour clock.
// When Start >= End the range wraps past midnight, so 20-0 selects 20..23
// and 0-0 selects every hour.
type HourRange struct {
	Start int
	End   int
}

// Contains reports whether the hour falls inside the range.
func (r HourRange) Contains(hour int) bool {
	if r.Start < r.End {
		return hour >= r.Start && hour < r.End
	}
	return hour >= r.Start || hour < r.End
}

// Hours returns the selected hours in ascending order.
func (r HourRange) Hours() []int {
	hours := make([]int, 0, 24)
	for hour := 0; hour < 24; hour++ {
		if r.Contains(hour) {
			hours = append(hours, hour)
		}
	}
	return hours
}

// String returns the range as HH:MM-HH:MM.
func (r HourRange) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", r.Start, r.End)
}

// TimeCommand requests revenue per hour of day.
type TimeCommand struct {
	// Range restricts the report to some hours; nil means all hours.
	Range *HourRange
}

func (TimeCommand) Kind() Kind { return KindTime }
func (TimeCommand) sealed()    {}

func (c TimeCommand) String() string {
	if c.Range == nil {
		return "time"
	}
	return "time " + c.Range.String()
}

// Hours returns the hours the report covers in ascending order.
func (c TimeCommand) Hours() []int {
	if c.Range == nil {
		return HourRange{}.Hours()
	}
	return c.Range.Hours()
}

// =============================================================================
// DAILY REVENUE
// =============================================================================

// DailyRevenueCommand requests revenue per weekday for one shop.
type DailyRevenueCommand struct {
	// ShopName is matched exactly and case-sensitively.
	ShopName string
}

func (DailyRevenueCommand) Kind() Kind { return KindDailyRevenue }
func (DailyRevenueCommand) sealed()    {}

func (c DailyRevenueCommand) String() string {
	return "Daily " + c.ShopName
}

// =============================================================================
// CITY EXTREME
// =============================================================================

// Dimension is the per-city metric compared by the city report.
type Dimension int

const (
	// Money compares total revenue.
	Money Dimension = iota + 1
	// Items compares the number of transactions.
	Items
)

// String returns the dimension name.
func (d Dimension) String() string {
	switch d {
	case Money:
		return "money"
	case Items:
		return "items"
	default:
		return "unknown"
	}
}

// Extreme selects the maximum or minimum of a metric.
type Extreme int

const (
	// Max selects the largest value.
	Max Extreme = iota + 1
	// Min selects the smallest value.
	Min
)

// String returns the extreme name.
func (e Extreme) String() string {
	switch e {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return "unknown"
	}
}

// CityExtremeCommand requests the cities with the extreme value of a metric.
type CityExtremeCommand struct {
	Dimension Dimension
	Extreme   Extreme
}

func (CityExtremeCommand) Kind() Kind { return KindCityExtreme }
func (CityExtremeCommand) sealed()    {}

func (c CityExtremeCommand) String() string {
	return fmt.Sprintf("city -%s -%s", c.Dimension, c.Extreme)
}

// =============================================================================
// FULL
// =============================================================================

// FullCommand requests every transaction grouped by shop.
type FullCommand struct{}

func (FullCommand) Kind() Kind     { return KindFull }
func (FullCommand) sealed()        {}
func (FullCommand) String() string { return "full" }

// Slug returns a file-name friendly form of the command, e.g. "city-money-max".
func Slug(c Command) string {
	fields := strings.Fields(strings.ReplaceAll(c.String(), ":", ""))
	for i, field := range fields {
		fields[i] = strings.TrimLeft(field, "-")
	}
	return strings.ToLower(strings.Join(fields, "-"))
}
