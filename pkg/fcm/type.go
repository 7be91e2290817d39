package fcm

// Config holds the Firebase credentials for the push gateway.
type Config struct {
	CredentialsFile string
}

// Notification is a single push payload fanned out to a token batch.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// MulticastResult is the per-batch outcome of one multicast call.
type MulticastResult struct {
	SuccessCount int
	FailureCount int

	// InvalidTokens are tokens the gateway reported as permanently
	// deregistered. The caller is expected to retire them.
	InvalidTokens []string

	// Errors holds the transient per-token failure messages, for logging.
	Errors []string
}
