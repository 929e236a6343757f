package utils

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogEvent writes one structured entry tagged with module/action/request_id.
// Keep message summarized; never log raw payloads.
func LogEvent(requestID, module, action, message string) {
	log.WithFields(log.Fields{
		"module":     strings.ToLower(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// ConfigureLogger applies level and format to the global logger.
func ConfigureLogger(level, format string) {
	if lvl, err := log.ParseLevel(strings.TrimSpace(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
