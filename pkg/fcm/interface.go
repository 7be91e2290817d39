package fcm

import "context"

// IFcm defines the push gateway interface. The gateway is natively multicast:
// one call delivers to every token in the batch and reports a per-token
// outcome.
type IFcm interface {
	// SendMulticast delivers the notification to every token. Tokens the
	// gateway reports as permanently deregistered are collected in the
	// result's InvalidTokens; transient per-token failures only increment
	// FailureCount.
	SendMulticast(ctx context.Context, tokens []string, notification Notification) (*MulticastResult, error)
}
