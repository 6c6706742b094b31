package utils

import "log"

// LogEvent writes a single service-level event line, tagged with the request
// id when one is known.
func LogEvent(requestID, scope, action, msg string) {
	if requestID == "" {
		log.Printf("[%s] %s: %s", scope, action, msg)
		return
	}
	log.Printf("[%s] request_id=%s %s: %s", scope, requestID, action, msg)
}
