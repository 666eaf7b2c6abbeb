package models

import (
	"fmt"
	"net/url"
	"time"
)

// DateLayout is how dates travel in query strings (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// DateRange is an optional period filter. It only applies when both ends
// are set.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange reads two user-typed dates. Empty strings mean "no filter".
// Both dd.mm.yyyy and yyyy-mm-dd are accepted.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if r.Start, err = parseDate(start); err != nil {
		return DateRange{}, err
	}
	if r.End, err = parseDate(end); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{DateLayout, "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, use dd.mm.yyyy or yyyy-mm-dd", s)
}

// Complete reports whether both ends are set.
func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Query returns startDate/endDate parameters, or nil when the range is not
// complete.
func (r DateRange) Query() url.Values {
	if !r.Complete() {
		return nil
	}
	return url.Values{
		"startDate": []string{r.Start.Format(DateLayout)},
		"endDate":   []string{r.End.Format(DateLayout)},
	}
}
