package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs one entry per request, leveled by response status
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		entry := log.WithFields(log.Fields{
			"StatusCode":    c.Writer.Status(),
			"Latency":       time.Since(start).Round(time.Millisecond),
			"IP":            c.ClientIP(),
			"Method":        c.Request.Method,
			"Path":          c.Request.URL.Path,
			"Route":         route,
			"Query":         c.Request.URL.RawQuery,
			"UserAgent":     c.Request.UserAgent(),
			"NumBytesSent":  c.Writer.Size(),
			"NumErrorsSeen": len(c.Errors),
		})

		code := c.Writer.Status()
		switch {
		case code >= http.StatusOK && code < http.StatusMultipleChoices:
			entry.Info("Processed HTTP request")
		case code >= http.StatusMultipleChoices && code < http.StatusBadRequest:
			entry.Info("Forward HTTP request")
		case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
			entry.Warn("Bad HTTP request")
		default:
			entry.Error("Internal Server Error")
		}
	}
}
