package sensor

import "time"

// Internal column vocabulary produced by the normalizer. Source tables use
// inconsistent names; everything funnels into these.
const (
	ColHumidity         = "humidity"
	ColPH               = "ph"
	ColTemperature      = "temperature"
	ColRainProbability  = "rain_probability"
	ColRainThreshold    = "rain_threshold"
	ColNitrogen         = "nitrogen"
	ColPhosphorus       = "phosphorus"
	ColPotassium        = "potassium"
	ColIrrigationStatus = "irrigation_status"
)

// Irrigation pump status value that counts as "running".
const StatusOn = "ON"

// NutrientColumns lists the binary presence columns, in display order.
var NutrientColumns = []string{ColPhosphorus, ColNitrogen, ColPotassium}

// NutrientLabels maps nutrient columns to their display names.
var NutrientLabels = map[string]string{
	ColPhosphorus: "Fósforo",
	ColNitrogen:   "Nitrogênio",
	ColPotassium:  "Potássio",
}

// RawRow is a single fetched row keyed by its source column names, before any
// normalization. Values are whatever the driver produced.
type RawRow map[string]any

// Reading is one normalized sensor record. Numeric fields are nil when the
// source value was missing or unparsable; a sentinel number is never used.
type Reading struct {
	Timestamp        *time.Time     `json:"timestamp,omitempty"`
	Humidity         *float64       `json:"humidity,omitempty"`
	PH               *float64       `json:"ph,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	RainProbability  *float64       `json:"rain_probability,omitempty"`
	RainThreshold    *float64       `json:"rain_threshold,omitempty"`
	Nitrogen         *int           `json:"nitrogen,omitempty"`
	Phosphorus       *int           `json:"phosphorus,omitempty"`
	Potassium        *int           `json:"potassium,omitempty"`
	IrrigationStatus string         `json:"irrigation_status,omitempty"`
	IrrigationOn     bool           `json:"irrigation_on"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// Nutrient returns the presence flag for the named nutrient column, or nil
// for names that are not nutrient columns.
func (r *Reading) Nutrient(name string) *int {
	switch name {
	case ColNitrogen:
		return r.Nitrogen
	case ColPhosphorus:
		return r.Phosphorus
	case ColPotassium:
		return r.Potassium
	}
	return nil
}

// Table is an ordered sequence of readings. When timestamps were derived it
// is sorted ascending by timestamp with untimestamped rows dropped; otherwise
// it preserves the source row order.
type Table []Reading

// Latest returns the most recent reading, or nil for an empty table.
func (t Table) Latest() *Reading {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// Previous returns the reading immediately before the latest, or nil.
func (t Table) Previous() *Reading {
	if len(t) < 2 {
		return nil
	}
	return &t[len(t)-2]
}

// Tail returns the last n readings (fewer if the table is shorter).
func (t Table) Tail(n int) Table {
	if n <= 0 || len(t) == 0 {
		return Table{}
	}
	if len(t) <= n {
		return t
	}
	return t[len(t)-n:]
}

// Segment is a maximal time span over which a categorical subject (the
// irrigation status, or one nutrient's presence) held one constant value.
// End is always after Start and segments for one subject never overlap.
type Segment struct {
	Subject string    `json:"subject"`
	Status  string    `json:"status"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Hours   float64   `json:"duration_hours"`
}

// Presence is the tri-state interpretation of a binary nutrient column.
type Presence int

const (
	PresenceUnknown Presence = iota
	PresenceAbsent
	PresencePresent
)
