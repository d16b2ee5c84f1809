package csl

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Date is a CSL-JSON date. DateParts holds one entry for a single date and
// two for a range; each entry is year, optional month, optional day. A date
// may instead be free text (Literal) or an unparsed string (Raw).
type Date struct {
	DateParts [][]int
	Season    string
	Circa     bool
	Literal   string
	Raw       string
}

// NewDate builds a single date from numeric parts. Trailing zero parts are
// dropped so NewDate(2013, 0, 0) is a year-only date.
func NewDate(year, month, day int) Date {
	parts := []int{year}
	if month > 0 {
		parts = append(parts, month)
		if day > 0 {
			parts = append(parts, day)
		}
	}
	return Date{DateParts: [][]int{parts}}
}

// NewDateRange builds a date spanning two part lists
func NewDateRange(from, to []int) Date {
	return Date{DateParts: [][]int{from, to}}
}

// IsEmpty reports whether the date carries no information at all
func (d Date) IsEmpty() bool {
	return len(d.DateParts) == 0 && d.Literal == "" && d.Raw == "" && d.Season == ""
}

// IsRange reports whether the date spans two part lists
func (d Date) IsRange() bool {
	return len(d.DateParts) >= 2
}

// Year returns the year of the first date part, or 0 if absent
func (d Date) Year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

// Part returns part i (0 year, 1 month, 2 day) of entry e, or 0 if absent
func (d Date) Part(e, i int) int {
	if e < len(d.DateParts) && i < len(d.DateParts[e]) {
		return d.DateParts[e][i]
	}
	return 0
}

// UnmarshalJSON decodes a CSL-JSON date object. Raw strings of the form
// "2004-02-12", "2004-02" or "2004" are parsed into date parts as well.
func (d *Date) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		switch key {
		case "date-parts":
			var parts [][]json.RawMessage
			if err := json.Unmarshal(raw, &parts); err != nil {
				continue
			}
			d.DateParts = nil
			for _, entry := range parts {
				var nums []int
				for _, p := range entry {
					if v, ok := flexInt(p); ok {
						nums = append(nums, v)
					}
				}
				if len(nums) > 0 {
					d.DateParts = append(d.DateParts, nums)
				}
			}
		case "season":
			d.Season = flexString(raw)
		case "circa":
			d.Circa = flexBool(raw)
		case "literal":
			d.Literal = flexString(raw)
		case "raw":
			d.Raw = flexString(raw)
		}
	}
	if len(d.DateParts) == 0 && d.Raw != "" {
		if parsed, ok := parseRawDate(d.Raw); ok {
			d.DateParts = parsed
		}
	}
	return nil
}

// MarshalJSON encodes the date as a CSL-JSON object
func (d Date) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{})
	if len(d.DateParts) > 0 {
		out["date-parts"] = d.DateParts
	}
	if d.Season != "" {
		out["season"] = d.Season
	}
	if d.Circa {
		out["circa"] = true
	}
	if d.Literal != "" {
		out["literal"] = d.Literal
	}
	if d.Raw != "" {
		out["raw"] = d.Raw
	}
	return json.Marshal(out)
}

// parseRawDate turns "2004-02-12" style strings, and "2004/2006" ranges,
// into date parts. Anything it cannot read is left for literal rendering.
func parseRawDate(raw string) ([][]int, bool) {
	var out [][]int
	for _, chunk := range strings.Split(raw, "/") {
		var nums []int
		for _, field := range strings.Split(strings.TrimSpace(chunk), "-") {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, false
			}
			nums = append(nums, v)
		}
		if len(nums) == 0 || len(nums) > 3 {
			return nil, false
		}
		out = append(out, nums)
	}
	if len(out) == 0 || len(out) > 2 {
		return nil, false
	}
	return out, true
}
