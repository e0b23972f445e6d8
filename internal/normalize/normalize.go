// Package normalize reconciles heterogeneously-named raw sensor rows into the
// fixed internal vocabulary and a typed, time-ordered reading table.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

var nonCanonical = regexp.MustCompile(`[^a-z0-9_]+`)

// CanonicalName normalizes a source column name: trim, lowercase, "%" to
// "_pct", spaces to "_", any other punctuation collapsed to "_", repeated
// "_" collapsed, edge "_" stripped. The result is stable under reapplication.
func CanonicalName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "%", "_pct")
	key = strings.ReplaceAll(key, " ", "_")
	key = nonCanonical.ReplaceAllString(key, "_")
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	return strings.Trim(key, "_")
}

// aliases maps canonical-but-synonymous column names onto the internal
// vocabulary. Canonical names not listed here pass through unchanged.
var aliases = map[string]string{
	"humidity_pct":         sensor.ColHumidity,
	"humidity":             sensor.ColHumidity,
	"phosphorus_p":         sensor.ColPhosphorus,
	"potassium_k":          sensor.ColPotassium,
	"nitrogen_n":           sensor.ColNitrogen,
	"pump_status":          sensor.ColIrrigationStatus,
	"pump":                 sensor.ColIrrigationStatus,
	"rain_probability_pct": sensor.ColRainProbability,
	"rain_threshold_pct":   sensor.ColRainThreshold,
	"temperature_c":        sensor.ColTemperature,
	"soil_temperature_c":   sensor.ColTemperature,
}

// Column pairs that combine into a timestamp. The day-first vs month-first
// split mirrors the two upstream table formats; it is intentionally not
// generalized beyond these pairs.
const (
	colDate       = "date"
	colRecordDate = "recorddate"
	colTime       = "time"
)

// The ".999999999" suffixes make fractional seconds optional rather than
// required, so each entry covers both plain and sub-second clock values.
var dayFirstLayouts = []string{
	"02/01/2006 15:04:05.999999999",
	"02/01/2006 15:04",
	"02-01-2006 15:04:05.999999999",
	"02-01-2006 15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

var monthFirstLayouts = []string{
	"01/02/2006 15:04:05.999999999",
	"01/02/2006 15:04",
	"01-02-2006 15:04:05.999999999",
	"01-02-2006 15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

type timestampMode int

const (
	tsNone timestampMode = iota
	tsDayFirst
	tsMonthFirst
)

// Normalize turns raw rows into a typed reading table. Empty input yields an
// empty table. When a timestamp column pair exists, rows whose timestamp does
// not parse are dropped and the result is sorted ascending by timestamp;
// otherwise the source row order is preserved.
func Normalize(rows []sensor.RawRow) sensor.Table {
	table := make(sensor.Table, 0, len(rows))
	if len(rows) == 0 {
		return table
	}

	canonical := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		canonical = append(canonical, canonicalizeRow(row))
	}

	mode := detectTimestampMode(canonical)

	for _, row := range canonical {
		reading := buildReading(row)
		if mode != tsNone {
			reading.Timestamp = parseTimestamp(row, mode)
			if reading.Timestamp == nil {
				continue
			}
		}
		table = append(table, reading)
	}

	if mode != tsNone {
		sort.SliceStable(table, func(i, j int) bool {
			return table[i].Timestamp.Before(*table[j].Timestamp)
		})
	}
	return table
}

// canonicalizeRow rewrites every key through CanonicalName and the alias
// table. When two source columns collapse onto the same internal name, the
// later value wins.
func canonicalizeRow(row sensor.RawRow) map[string]any {
	out := make(map[string]any, len(row))
	for name, value := range row {
		key := CanonicalName(name)
		if mapped, ok := aliases[key]; ok {
			key = mapped
		}
		out[key] = value
	}
	return out
}

func detectTimestampMode(rows []map[string]any) timestampMode {
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			seen[key] = true
		}
	}
	switch {
	case seen[colDate] && seen[colTime]:
		return tsDayFirst
	case seen[colRecordDate] && seen[colTime]:
		return tsMonthFirst
	}
	return tsNone
}

func parseTimestamp(row map[string]any, mode timestampMode) *time.Time {
	dateCol := colDate
	layouts := dayFirstLayouts
	if mode == tsMonthFirst {
		dateCol = colRecordDate
		layouts = monthFirstLayouts
	}

	date := strings.TrimSpace(stringValue(row[dateCol]))
	clock := strings.TrimSpace(stringValue(row[colTime]))
	if date == "" || clock == "" {
		return nil
	}

	combined := date + " " + clock
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, combined); err == nil {
			return &ts
		}
	}
	return nil
}

func buildReading(row map[string]any) sensor.Reading {
	reading := sensor.Reading{}
	for key, value := range row {
		switch key {
		case sensor.ColHumidity:
			reading.Humidity = parseOptionalNumber(value)
		case sensor.ColPH:
			reading.PH = parseOptionalNumber(value)
		case sensor.ColTemperature:
			reading.Temperature = parseOptionalNumber(value)
		case sensor.ColRainProbability:
			reading.RainProbability = parseOptionalNumber(value)
		case sensor.ColRainThreshold:
			reading.RainThreshold = parseOptionalNumber(value)
		case sensor.ColNitrogen:
			reading.Nitrogen = parseBinary(value)
		case sensor.ColPhosphorus:
			reading.Phosphorus = parseBinary(value)
		case sensor.ColPotassium:
			reading.Potassium = parseBinary(value)
		case sensor.ColIrrigationStatus:
			reading.IrrigationStatus = strings.ToUpper(strings.TrimSpace(stringValue(value)))
			reading.IrrigationOn = reading.IrrigationStatus == sensor.StatusOn
		default:
			if reading.Extra == nil {
				reading.Extra = make(map[string]any)
			}
			reading.Extra[key] = value
		}
	}
	return reading
}

// parseOptionalNumber coerces a raw scalar to a float, or nil when the value
// is missing or unparsable. NaN and infinities count as missing.
func parseOptionalNumber(value any) *float64 {
	var f float64
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case []byte:
		return parseOptionalNumber(string(v))
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseBinary coerces a nutrient flag; anything other than exactly 0 or 1
// is unknown.
func parseBinary(value any) *int {
	f := parseOptionalNumber(value)
	if f == nil {
		return nil
	}
	switch *f {
	case 0:
		zero := 0
		return &zero
	case 1:
		one := 1
		return &one
	}
	return nil
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		// DATE columns decode with a real year, TIME columns with the zero
		// year. Render only the half that carries information so the
		// date+time concatenation stays parseable.
		if v.Year() > 1 {
			return v.Format("2006-01-02")
		}
		return v.Format("15:04:05")
	default:
		return fmt.Sprint(v)
	}
}
