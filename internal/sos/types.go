package sos

// Summary is the outcome of handling one emergency alert.
type Summary struct {
	AlertID      string `json:"alert_id"`
	Duplicate    bool   `json:"duplicate"`
	Recipients   int    `json:"recipients"`
	EmailsSent   int    `json:"emails_sent"`
	EmailsFailed int    `json:"emails_failed"`
	PushTokens   int    `json:"push_tokens"`
	PushFailed   int    `json:"push_failed"`
}
