package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/response"
)

const dayLayout = "2006-01-02"

// bindJSON binds the request body and answers 400 when it is malformed
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// bindQuery binds query parameters and answers 400 when they are malformed
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return false
	}
	return true
}

// dayRange turns inclusive YYYY-MM-DD bounds into a half-open range in local time.
// Blank bounds stay zero.
func dayRange(from, to string) (time.Time, time.Time) {
	var start, end time.Time
	if from != "" {
		start, _ = time.ParseInLocation(dayLayout, from, time.Local)
	}
	if to != "" {
		end, _ = time.ParseInLocation(dayLayout, to, time.Local)
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}
