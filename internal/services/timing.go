package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// SlowCallThreshold is the duration above which TrackTime logs at warn level
var SlowCallThreshold = 10 * time.Second

// TrackTime logs how long funcName ran. Use as defer TrackTime("name", time.Now()).
func TrackTime(funcName string, start time.Time) {
	elapsed := time.Since(start)
	entry := log.WithFields(log.Fields{
		"func":    funcName,
		"elapsed": elapsed.Round(time.Millisecond),
	})
	if elapsed > SlowCallThreshold {
		entry.Warn("slow call")
		return
	}
	entry.Debug("call finished")
}
