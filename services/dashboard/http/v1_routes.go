package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/readings, /api/v1/segments, /api/v1/advice
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())

	// Readings - the normalized table and the latest metric cards
	readings := v1.Group("/readings")
	{
		readings.GET("", s.handleV1Readings)
		readings.GET("/summary", s.handleV1ReadingsSummary)
	}

	// Segments - contiguous status / nutrient presence spans
	segments := v1.Group("/segments")
	{
		segments.GET("/irrigation", s.handleV1IrrigationSegments)
		segments.GET("/nutrients", s.handleV1NutrientSegments)
	}

	// Advice - ordered advisory messages from the rule cascade
	v1.GET("/advice", s.handleV1Advice)
}

// apiVersionMiddleware adds the X-API-Version header to v1 responses.
func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
