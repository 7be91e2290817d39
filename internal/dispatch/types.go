package dispatch

// PushReport is the outcome of one multicast push.
type PushReport struct {
	Requested int `json:"requested"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`

	// Retired is the number of tokens the gateway reported as permanently
	// deregistered and which were removed from the store.
	Retired int `json:"retired"`

	// Skipped is true when no tokens were available and no call was made.
	Skipped bool `json:"skipped"`
}

// EmailReport is the outcome of a per-recipient email fan-out.
// Sent + Failed always equals the number of messages given.
type EmailReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
