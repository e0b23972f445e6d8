package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frakneable/cursotiaor/internal/advice"
	"github.com/frakneable/cursotiaor/internal/format"
	"github.com/frakneable/cursotiaor/internal/normalize"
	"github.com/frakneable/cursotiaor/internal/segment"
	"github.com/frakneable/cursotiaor/internal/sensor"
	"github.com/frakneable/cursotiaor/services/dashboard/db"
)

// loadTable fetches the configured sensor table and normalizes it. A source
// that returns zero rows yields an empty table, not an error.
func (s *Server) loadTable(ctx context.Context) (sensor.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	rows, err := s.source.FetchRows(ctx, s.cfg.SensorTable, s.cfg.FetchLimit)
	if err != nil {
		return nil, err
	}
	return normalize.Normalize(rows), nil
}

// writeFetchError distinguishes "source unavailable" from every other
// failure so the frontend can show different messaging.
func writeFetchError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrSourceUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sensor source unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// handleV1Readings returns the normalized, time-ordered reading table
// GET /api/v1/readings
func (s *Server) handleV1Readings(c *gin.Context) {
	table, err := s.loadTable(c.Request.Context())
	if err != nil {
		writeFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": table,
		"meta": gin.H{
			"count": len(table),
			"table": s.cfg.SensorTable,
			"limit": s.cfg.FetchLimit,
		},
	})
}

// handleV1ReadingsSummary returns formatted metric cards for the latest
// reading, with deltas against the previous one
// GET /api/v1/readings/summary
func (s *Server) handleV1ReadingsSummary(c *gin.Context) {
	table, err := s.loadTable(c.Request.Context())
	if err != nil {
		writeFetchError(c, err)
		return
	}

	latest := table.Latest()
	if latest == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil, "meta": gin.H{"count": 0}})
		return
	}
	previous := table.Previous()

	irrigationLabel := "Desligada"
	if latest.IrrigationOn {
		irrigationLabel = "Ligada"
	}

	data := gin.H{
		"humidity":         metricCard(latest.Humidity, optional(previous, func(r *sensor.Reading) *float64 { return r.Humidity }), 1),
		"ph":               metricCard(latest.PH, optional(previous, func(r *sensor.Reading) *float64 { return r.PH }), 2),
		"temperature":      metricCard(latest.Temperature, optional(previous, func(r *sensor.Reading) *float64 { return r.Temperature }), 1),
		"rain_probability": metricCard(latest.RainProbability, optional(previous, func(r *sensor.Reading) *float64 { return r.RainProbability }), 0),
		"irrigation": gin.H{
			"status": statusOrPlaceholder(latest.IrrigationStatus),
			"label":  irrigationLabel,
		},
		"nutrients": gin.H{
			sensor.ColPhosphorus: format.Presence(latest.Phosphorus),
			sensor.ColNitrogen:   format.Presence(latest.Nitrogen),
			sensor.ColPotassium:  format.Presence(latest.Potassium),
		},
	}

	meta := gin.H{"count": len(table)}
	if latest.Timestamp != nil {
		meta["timestamp"] = latest.Timestamp.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, gin.H{"data": data, "meta": meta})
}

// handleV1IrrigationSegments returns how long the irrigation system held
// each contiguous status
// GET /api/v1/segments/irrigation
func (s *Server) handleV1IrrigationSegments(c *gin.Context) {
	table, err := s.loadTable(c.Request.Context())
	if err != nil {
		writeFetchError(c, err)
		return
	}

	segments := segment.Status(table)
	c.JSON(http.StatusOK, gin.H{
		"data": segments,
		"meta": gin.H{"count": len(segments)},
	})
}

// handleV1NutrientSegments returns presence/absence spans per nutrient
// GET /api/v1/segments/nutrients?names=phosphorus,nitrogen
func (s *Server) handleV1NutrientSegments(c *gin.Context) {
	names := sensor.NutrientColumns
	if raw := c.Query("names"); raw != "" {
		names = nil
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(strings.ToLower(name))
			if _, ok := sensor.NutrientLabels[name]; !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown nutrient: " + name})
				return
			}
			names = append(names, name)
		}
	}

	table, err := s.loadTable(c.Request.Context())
	if err != nil {
		writeFetchError(c, err)
		return
	}

	segments := segment.Presence(table, names)
	c.JSON(http.StatusOK, gin.H{
		"data": segments,
		"meta": gin.H{"count": len(segments), "nutrients": names},
	})
}

// handleV1Advice returns the ordered advisory messages for the latest reading
// GET /api/v1/advice
func (s *Server) handleV1Advice(c *gin.Context) {
	table, err := s.loadTable(c.Request.Context())
	if err != nil {
		writeFetchError(c, err)
		return
	}

	messages := []string{}
	if latest := table.Latest(); latest != nil {
		messages = advice.Advise(*latest, table)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": messages,
		"meta": gin.H{"count": len(messages)},
	})
}

func metricCard(latest, previous *float64, precision int) gin.H {
	card := gin.H{"value": format.Number(latest, precision)}
	if delta := format.Delta(latest, previous, precision); delta != "" {
		card["delta"] = delta
	}
	return card
}

func optional(r *sensor.Reading, field func(*sensor.Reading) *float64) *float64 {
	if r == nil {
		return nil
	}
	return field(r)
}

func statusOrPlaceholder(status string) string {
	if status == "" {
		return format.Placeholder
	}
	return status
}
