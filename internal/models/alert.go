package models

import (
	"fmt"
	"time"
)

// AlertTimeFormat is the timestamp layout used in alert messages and cycle logs
const AlertTimeFormat = "2006-01-02 15:04:05"

// Alert is what the notifiers receive when the keyword shows up.
type Alert struct {
	Timestamp time.Time
	Keyword   string
	URL       string
	Message   string
	Attempt   int
	Via       MatchChannel
}

// NewAlert builds an alert with the standard console message
func NewAlert(ts time.Time, keyword, url string, attempt int, via MatchChannel) Alert {
	return Alert{
		Timestamp: ts,
		Keyword:   keyword,
		URL:       url,
		Attempt:   attempt,
		Via:       via,
		Message:   fmt.Sprintf("[%s] Found %q on the page! Tickets may be available: %s", ts.Format(AlertTimeFormat), keyword, url),
	}
}
