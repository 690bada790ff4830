package calc

import (
	"fmt"
	"strings"
	"time"

	"biowearth/internal/model"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indianEnglish = language.MustParse("en-IN")

// FormatMoney renders an amount the way the dashboard shows it: Indian digit
// grouping, no fraction digits, currency symbol first. Unknown currency codes
// are shown as the code itself.
func FormatMoney(amount any, code string) string {
	if code == "" {
		code = model.DefaultCurrency
	}
	d := model.ParseNumber(amount).Round(0)

	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = message.NewPrinter(indianEnglish).Sprint(currency.NarrowSymbol(unit))
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	p := message.NewPrinter(indianEnglish)
	return sign + symbol + p.Sprint(number.Decimal(d.IntPart(), number.MaxFractionDigits(0)))
}

const (
	dayMonth     = "02-Jan"
	dayMonthYear = "02-Jan-2006"
)

// FormatDate renders a date as "05-Mar", "-" when empty or unparsable.
func FormatDate(v any) string { return formatDate(v, dayMonth) }

// FormatDateWithYear renders a date as "05-Mar-2024", "-" when empty or unparsable.
func FormatDateWithYear(v any) string { return formatDate(v, dayMonthYear) }

func formatDate(v any, layout string) string {
	t := toTime(v)
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

func toTime(v any) time.Time {
	switch x := v.(type) {
	case model.Timestamp:
		return x.Time
	case *model.Timestamp:
		if x == nil {
			return time.Time{}
		}
		return x.Time
	case time.Time:
		return x
	case string:
		return model.ParseTime(x)
	case nil:
		return time.Time{}
	default:
		return model.ParseTime(strings.TrimSpace(fmt.Sprint(x)))
	}
}
