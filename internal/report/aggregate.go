package report

import (
	"iter"
	"slices"
	"time"

	"github.com/ginjaninja78/sales-reporter/internal/command"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURLY REVENUE
// =============================================================================

// HourTotal is the revenue of one hour of day.
type HourTotal struct {
	Hour  int
	Total decimal.Decimal
}

// HourlyRevenue is revenue per hour across all shops.
type HourlyRevenue struct {
	// Range is the requested range, nil when every hour was requested.
	Range *command.HourRange

	// Hours lists every selected hour in ascending order, including hours
	// without sales.
	Hours []HourTotal
}

func (HourlyRevenue) Kind() command.Kind { return command.KindTime }

// Total returns the sum over every listed hour.
func (r HourlyRevenue) Total() decimal.Decimal {
	total := decimal.Zero
	for _, h := range r.Hours {
		total = total.Add(h.Total)
	}
	return total
}

// hourlyRevenue buckets prices by the hour of the timestamp in its own offset.
func hourlyRevenue(transactions iter.Seq2[types.Transaction, error], c command.TimeCommand) (HourlyRevenue, error) {
	var totals [24]decimal.Decimal

	for transaction, err := range transactions {
		if err != nil {
			return HourlyRevenue{}, err
		}
		hour := transaction.Timestamp.Hour()
		totals[hour] = totals[hour].Add(transaction.Price)
	}

	hours := c.Hours()
	result := HourlyRevenue{Range: c.Range, Hours: make([]HourTotal, 0, len(hours))}
	for _, hour := range hours {
		result.Hours = append(result.Hours, HourTotal{Hour: hour, Total: totals[hour]})
	}
	return result, nil
}

// =============================================================================
// DAILY REVENUE
// =============================================================================

// DayTotal is the revenue of one weekday.
type DayTotal struct {
	Weekday time.Weekday
	Total   decimal.Decimal
}

// DailyRevenue is one shop's revenue per weekday.
type DailyRevenue struct {
	Shop string

	// Transactions is the number of transactions that matched the shop.
	Transactions int

	// Days always holds seven entries, starting at the configured first
	// weekday.
	Days []DayTotal
}

func (DailyRevenue) Kind() command.Kind { return command.KindDailyRevenue }

// dailyRevenue sums the prices of one shop per weekday. The shop name must
// match exactly.
func dailyRevenue(transactions iter.Seq2[types.Transaction, error], c command.DailyRevenueCommand, first time.Weekday) (DailyRevenue, error) {
	var totals [7]decimal.Decimal
	matched := 0

	for transaction, err := range transactions {
		if err != nil {
			return DailyRevenue{}, err
		}
		if transaction.ShopName != c.ShopName {
			continue
		}
		day := transaction.Timestamp.Weekday()
		totals[day] = totals[day].Add(transaction.Price)
		matched++
	}

	result := DailyRevenue{Shop: c.ShopName, Transactions: matched, Days: make([]DayTotal, 0, 7)}
	for i := range 7 {
		day := (first + time.Weekday(i)) % 7
		result.Days = append(result.Days, DayTotal{Weekday: day, Total: totals[day]})
	}
	return result, nil
}

// =============================================================================
// CITY EXTREME
// =============================================================================

// CityExtreme names the cities holding the extreme value of a metric.
type CityExtreme struct {
	Dimension command.Dimension
	Extreme   command.Extreme

	// Value is the extreme revenue (Money) or transaction count (Items).
	Value decimal.Decimal

	// Cities holds every city tied at Value, sorted by name.
	Cities []string
}

func (CityExtreme) Kind() command.Kind { return command.KindCityExtreme }

// cityTotals accumulates both metrics for one city.
type cityTotals struct {
	revenue decimal.Decimal
	items   int64
}

func (t cityTotals) metric(d command.Dimension) decimal.Decimal {
	if d == command.Items {
		return decimal.NewFromInt(t.items)
	}
	return t.revenue
}

// cityExtreme computes per-city revenue and transaction counts and keeps
// every city tied at the maximum or minimum.
func cityExtreme(transactions iter.Seq2[types.Transaction, error], c command.CityExtremeCommand) (CityExtreme, error) {
	cities := make(map[string]cityTotals)

	for transaction, err := range transactions {
		if err != nil {
			return CityExtreme{}, err
		}
		totals := cities[transaction.City]
		totals.revenue = totals.revenue.Add(transaction.Price)
		totals.items++
		cities[transaction.City] = totals
	}

	result := CityExtreme{Dimension: c.Dimension, Extreme: c.Extreme}
	for city, totals := range cities {
		value := totals.metric(c.Dimension)

		switch {
		case result.Cities == nil:
		case value.Equal(result.Value):
			result.Cities = append(result.Cities, city)
			continue
		case c.Extreme == command.Max && value.LessThan(result.Value):
			continue
		case c.Extreme == command.Min && value.GreaterThan(result.Value):
			continue
		}

		result.Value = value
		result.Cities = []string{city}
	}

	slices.Sort(result.Cities)
	return result, nil
}

// =============================================================================
// FULL DUMP
// =============================================================================

// ShopTransactions is every transaction of one shop in input order.
type ShopTransactions struct {
	Shop         string
	Transactions []types.Transaction
}

// FullDump groups every transaction by shop.
type FullDump struct {
	// Shops are listed in order of first appearance in the input.
	Shops []ShopTransactions
}

func (FullDump) Kind() command.Kind { return command.KindFull }

// fullDump groups transactions by shop, keeping input order within each shop
// and the order of first occurrence across shops.
func fullDump(transactions iter.Seq2[types.Transaction, error]) (FullDump, error) {
	var result FullDump
	index := make(map[string]int)

	for transaction, err := range transactions {
		if err != nil {
			return FullDump{}, err
		}
		i, exists := index[transaction.ShopName]
		if !exists {
			i = len(result.Shops)
			index[transaction.ShopName] = i
			result.Shops = append(result.Shops, ShopTransactions{Shop: transaction.ShopName})
		}
		result.Shops[i].Transactions = append(result.Shops[i].Transactions, transaction)
	}

	return result, nil
}
