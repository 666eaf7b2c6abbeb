package render

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const nbsp = "\u00a0"

// FormatPrice renders an amount in roubles with two decimals, grouped by
// thousands with a no-break space: "1 234,50 ₽" for ru, "₽1,234.50" otherwise.
func FormatPrice(amount decimal.Decimal, locale string) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	sign := ""
	if neg {
		sign = "-"
	}
	if strings.EqualFold(locale, "en") {
		return sign + "₽" + group(intPart, ",") + "." + frac
	}
	return sign + group(intPart, nbsp) + "," + frac + nbsp + "₽"
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a backend timestamp as dd.MM.yyyy. Empty input gives
// "-", unparseable input is returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("02.01.2006")
}

// FormatDateTime is FormatDate with the time of day.
func FormatDateTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("02.01.2006, 15:04")
}

func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
