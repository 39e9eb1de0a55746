package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ginjaninja78/sales-reporter/internal/types"
)

// rangePattern matches HH:MM-HH:MM.
var rangePattern = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// Parse turns the tokens following the input file into a Command.
//
// The first token may hold the whole command as one quoted argument
// ("time 20:00-00:00"), so the command name is cut from it at the first white
// space. The parameters of time, city and full are then split on white space;
// the Daily shop name keeps the exact text it was given. Every failure wraps
// types.ErrInvalidCommand.
func Parse(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: missing command", types.ErrInvalidCommand)
	}

	name, rest := splitName(tokens[0])
	if name == "" {
		return nil, fmt.Errorf("%w: missing command", types.ErrInvalidCommand)
	}
	if rest != "" {
		tokens = append([]string{rest}, tokens[1:]...)
	} else {
		tokens = tokens[1:]
	}

	if name == "Daily" {
		return parseDaily(tokens)
	}

	params := strings.Fields(strings.Join(tokens, " "))

	switch name {
	case "time":
		return parseTime(params)
	case "city":
		return parseCity(params)
	case "full":
		if len(params) != 0 {
			return nil, invalid("full takes no parameters, got %q", strings.Join(params, " "))
		}
		return FullCommand{}, nil
	default:
		return nil, invalid("unknown command %q", name)
	}
}

// splitName cuts the command name from token. rest is the text after the
// single white space character that ends the name.
func splitName(token string) (name, rest string) {
	token = strings.TrimLeftFunc(token, unicode.IsSpace)
	i := strings.IndexFunc(token, unicode.IsSpace)
	if i < 0 {
		return token, ""
	}
	_, size := utf8.DecodeRuneInString(token[i:])
	return token[:i], token[i+size:]
}

func parseTime(params []string) (Command, error) {
	switch len(params) {
	case 0:
		return TimeCommand{}, nil
	case 1:
		r, err := ParseHourRange(params[0])
		if err != nil {
			return nil, err
		}
		return TimeCommand{Range: &r}, nil
	default:
		return nil, invalid("time takes at most one range, got %q", strings.Join(params, " "))
	}
}

func parseDaily(tokens []string) (Command, error) {
	shop := strings.Join(tokens, " ")
	if strings.TrimSpace(shop) == "" {
		return nil, invalid("Daily requires a shop name")
	}
	return DailyRevenueCommand{ShopName: shop}, nil
}

func parseCity(params []string) (Command, error) {
	if len(params) != 2 {
		return nil, invalid("city requires -money|-items and -max|-min")
	}

	var c CityExtremeCommand

	switch params[0] {
	case "-money":
		c.Dimension = Money
	case "-items":
		c.Dimension = Items
	default:
		return nil, invalid("unknown city dimension %q", params[0])
	}

	switch params[1] {
	case "-max":
		c.Extreme = Max
	case "-min":
		c.Extreme = Min
	default:
		return nil, invalid("unknown city extreme %q", params[1])
	}

	return c, nil
}

// ParseHourRange parses HH:MM-HH:MM. Reports bucket by whole hours, so the
// minutes must be 00. 24:00 is accepted as an end bound and means midnight.
func ParseHourRange(token string) (HourRange, error) {
	m := rangePattern.FindStringSubmatch(token)
	if m == nil {
		return HourRange{}, invalid("malformed time range %q, expected HH:MM-HH:MM", token)
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[3])

	if m[2] != "00" || m[4] != "00" {
		return HourRange{}, invalid("time range %q must be on whole hours", token)
	}
	if start > 23 {
		return HourRange{}, invalid("time range %q starts after 23:00", token)
	}
	if end > 24 {
		return HourRange{}, invalid("time range %q ends after 24:00", token)
	}
	if end == 24 {
		end = 0
	}

	return HourRange{Start: start, End: end}, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrInvalidCommand, fmt.Sprintf(format, args...))
}
