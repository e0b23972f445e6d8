// Package segment extracts contiguous runs of categorical signals from a
// time-ordered reading table: irrigation status held over time and per
// nutrient presence spans.
package segment

import (
	"sort"
	"time"

	"github.com/frakneable/cursotiaor/internal/sensor"
)

// SubjectIrrigation names the status-duration segmentation subject.
const SubjectIrrigation = "irrigation"

// Labels used for nutrient presence segment statuses.
const (
	StatusPresent = "Presente"
	StatusAbsent  = "Ausente"
)

// defaultInterval bounds the synthesized tail of a nutrient timeline when the
// observed cadence is unusable.
const defaultInterval = time.Hour

// Status extracts maximal runs of equal irrigation status. Each segment ends
// at the timestamp of the first reading after the run, so the trailing run
// has no bound and is dropped. Runs are never merged across non-adjacent
// occurrences of the same status.
func Status(table sensor.Table) []sensor.Segment {
	rows := timedReadings(table)
	segments := make([]sensor.Segment, 0)
	runStart := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].IrrigationStatus == rows[runStart].IrrigationStatus {
			continue
		}
		if seg, ok := newSegment(SubjectIrrigation, rows[runStart].IrrigationStatus, *rows[runStart].Timestamp, *rows[i].Timestamp); ok {
			segments = append(segments, seg)
		}
		runStart = i
	}
	return segments
}

// Presence extracts presence/absence runs for each requested nutrient,
// independently over that nutrient's known-value subsequence. The trailing
// run is bounded by extrapolating one typical sample interval past its last
// reading instead of being dropped: presence flags are sampled sparsely, so
// the most recent state would otherwise be invisible.
func Presence(table sensor.Table, nutrients []string) []sensor.Segment {
	segments := make([]sensor.Segment, 0)
	for _, name := range nutrients {
		segments = append(segments, presenceForNutrient(table, name)...)
	}
	return segments
}

func presenceForNutrient(table sensor.Table, name string) []sensor.Segment {
	type point struct {
		ts    time.Time
		value int
	}

	points := make([]point, 0, len(table))
	for i := range table {
		r := &table[i]
		flag := r.Nutrient(name)
		if r.Timestamp == nil || flag == nil {
			continue
		}
		points = append(points, point{ts: *r.Timestamp, value: *flag})
	}
	if len(points) == 0 {
		return nil
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].ts.Before(points[j].ts) })

	stamps := make([]time.Time, len(points))
	for i, p := range points {
		stamps[i] = p.ts
	}
	typical := typicalInterval(stamps)

	segments := make([]sensor.Segment, 0)
	runStart := 0
	for i := 1; i <= len(points); i++ {
		if i < len(points) && points[i].value == points[runStart].value {
			continue
		}
		var end time.Time
		if i < len(points) {
			end = points[i].ts
		} else {
			end = points[len(points)-1].ts.Add(typical)
		}
		if seg, ok := newSegment(name, presenceLabel(points[runStart].value), points[runStart].ts, end); ok {
			segments = append(segments, seg)
		}
		if i < len(points) {
			runStart = i
		}
	}
	return segments
}

// typicalInterval is the median of consecutive timestamp deltas, defaulting
// to one hour when undefined or non-positive.
func typicalInterval(stamps []time.Time) time.Duration {
	if len(stamps) < 2 {
		return defaultInterval
	}
	deltas := make([]float64, 0, len(stamps)-1)
	for i := 1; i < len(stamps); i++ {
		deltas = append(deltas, stamps[i].Sub(stamps[i-1]).Seconds())
	}
	sort.Float64s(deltas)
	// Conventional median: for an even count, the average of the two middle
	// deltas, matching how the sampling cadence is expected to be estimated.
	n := len(deltas)
	median := deltas[n/2]
	if n%2 == 0 {
		median = (deltas[n/2-1] + deltas[n/2]) / 2
	}
	if median <= 0 {
		return defaultInterval
	}
	return time.Duration(median * float64(time.Second))
}

func newSegment(subject, status string, start, end time.Time) (sensor.Segment, bool) {
	if !end.After(start) {
		return sensor.Segment{}, false
	}
	return sensor.Segment{
		Subject: subject,
		Status:  status,
		Start:   start,
		End:     end,
		Hours:   end.Sub(start).Hours(),
	}, true
}

func presenceLabel(value int) string {
	if value == 1 {
		return StatusPresent
	}
	return StatusAbsent
}

func timedReadings(table sensor.Table) []sensor.Reading {
	rows := make([]sensor.Reading, 0, len(table))
	for _, r := range table {
		if r.Timestamp != nil {
			rows = append(rows, r)
		}
	}
	return rows
}
