package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veldroid/tattoopro-api/internal/schedule"
	"github.com/veldroid/tattoopro-api/internal/timezone"
)

// parseDateIn interprets a YYYY-MM-DD string at midnight of the studio
// timezone.
func parseDateIn(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location(tz))
}

// rangeFromQuery reads the mandatory from/to query params. Reports never
// fall back to a default range, a missing bound is a client error. The to
// bound is pushed to the end of its day so single-day ranges behave
// inclusively.
func rangeFromQuery(c *gin.Context, tz string) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}

	from, err := parseDateIn(tz, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDateIn(tz, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	return from, schedule.EndOfDay(to), true
}

func pageParams(c *gin.Context, defaultLimit, maxLimit int) (page, limit, offset int) {
	page = intQuery(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit = intQuery(c, "limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

func intQuery(c *gin.Context, key string, def int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
