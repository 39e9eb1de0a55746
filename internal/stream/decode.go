package stream

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ginjaninja78/sales-reporter/internal/csvparser"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/ginjaninja78/sales-reporter/internal/xlsxparser"
	"github.com/shopspring/decimal"
)

// Timestamp layouts that carry their own offset. Fractional seconds are
// accepted by time.Parse after the seconds field even when the layout omits them.
var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
}

// Timestamp layouts without an offset; the configured location applies.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// decodeRecord turns one record into a Transaction.
func decodeRecord(record *csvparser.Record, loc *time.Location, serialDates bool) (types.Transaction, error) {
	if record.Len() != types.FieldCount {
		return types.Transaction{}, &types.ParseError{
			Line: record.Line(),
			Err:  fmt.Errorf("expected %d fields, got %d", types.FieldCount, record.Len()),
		}
	}

	var (
		transaction types.Transaction
		raw         [types.FieldCount]string
	)
	for i := range raw {
		field, err := record.ParseNextField()
		if err != nil {
			return types.Transaction{}, &types.ParseError{Line: record.Line(), Err: err}
		}
		raw[i] = field
	}

	transaction.ShopName = raw[0]
	transaction.City = raw[1]
	transaction.Street = raw[2]
	transaction.Item = raw[3]

	timestamp, err := parseTimestamp(raw[4], loc, serialDates)
	if err != nil {
		return types.Transaction{}, &types.ParseError{
			Line:  record.Line(),
			Field: types.FieldTimestamp,
			Value: raw[4],
			Err:   err,
		}
	}
	transaction.Timestamp = timestamp

	price, err := parsePrice(raw[5])
	if err != nil {
		return types.Transaction{}, &types.ParseError{
			Line:  record.Line(),
			Field: types.FieldPrice,
			Value: raw[5],
			Err:   err,
		}
	}
	transaction.Price = price

	return transaction, nil
}

// parseTimestamp decodes an ISO-style date-time, keeping its offset.
// When serialDates is set, a bare number is read as an Excel serial date.
func parseTimestamp(value string, loc *time.Location, serialDates bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date-time")
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	if serialDates {
		if serial, err := strconv.ParseFloat(value, 64); err == nil {
			return xlsxparser.SerialToTime(serial, loc)
		}
	}

	return time.Time{}, errors.New("unrecognized date-time format")
}

// parsePrice decodes a currency-formatted amount exactly.
//
// Accepted forms include "12.50", "$12.50", "$1,300.00", "-$3.10", "$-3.10",
// "(3.10)" and "12.50 €" style trailing symbols. Thousands separators are
// commas; the decimal separator is a period.
func parsePrice(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(value)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, s)

	switch {
	case strings.HasPrefix(s, "-"):
		negative = !negative
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if s == "" || strings.ContainsAny(s, "+-eE") {
		return decimal.Decimal{}, errors.New("not a currency amount")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errors.New("not a currency amount")
	}

	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
