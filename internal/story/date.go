package story

import (
	"fmt"
	"strconv"
)

// Date is a calendar day as printed on listing pages. It carries no time zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Compare orders dates by year, then month, then day.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ParseMDY parses "MM/DD/YY". Two-digit years above 50 land in the 1900s,
// everything else in the 2000s.
func ParseMDY(s string) (Date, error) {
	if len(s) != 8 || s[2] != '/' || s[5] != '/' {
		return Date{}, fmt.Errorf("date %q: want MM/DD/YY", s)
	}

	month, err := atoiField(s[0:2], "month")
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	day, err := atoiField(s[3:5], "day")
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	year, err := atoiField(s[6:8], "year")
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}

	if year > 50 {
		year += 1900
	} else {
		year += 2000
	}

	return newDate(s, year, month, day)
}

// ParseYMD parses "YYYY/MM/DD".
func ParseYMD(s string) (Date, error) {
	if len(s) != 10 || s[4] != '/' || s[7] != '/' {
		return Date{}, fmt.Errorf("date %q: want YYYY/MM/DD", s)
	}

	year, err := atoiField(s[0:4], "year")
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	month, err := atoiField(s[5:7], "month")
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	day, err := atoiField(s[8:10], "day")
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}

	return newDate(s, year, month, day)
}

// ParseDate accepts either listing format, MM/DD/YY first.
func ParseDate(s string) (Date, error) {
	d, errMDY := ParseMDY(s)
	if errMDY == nil {
		return d, nil
	}

	d, errYMD := ParseYMD(s)
	if errYMD == nil {
		return d, nil
	}

	return Date{}, &Error{
		Kind:  KindDateParse,
		Phase: "date",
		Err:   fmt.Errorf("%q matches neither MM/DD/YY nor YYYY/MM/DD", s),
	}
}

func atoiField(s, name string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%s %q is not numeric", name, s)
		}
	}

	return strconv.Atoi(s)
}

func newDate(raw string, year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("date %q: month %d out of range", raw, month)
	}
	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("date %q: day %d out of range", raw, day)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}
