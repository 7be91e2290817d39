package fcm

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// SendMulticast delivers one notification to a batch of device tokens via
// FCM's SendEachForMulticast and partitions the per-token responses.
func (f *implFcm) SendMulticast(ctx context.Context, tokens []string, notification Notification) (*MulticastResult, error) {
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
	}

	resp, err := f.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return nil, err
	}

	result := &MulticastResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}

	for i, r := range resp.Responses {
		if r.Success || r.Error == nil {
			continue
		}
		// Unregistered means the token will never work again: the device
		// uninstalled the app or rotated its registration.
		if messaging.IsUnregistered(r.Error) || messaging.IsRegistrationTokenNotRegistered(r.Error) {
			result.InvalidTokens = append(result.InvalidTokens, tokens[i])
			continue
		}
		result.Errors = append(result.Errors, r.Error.Error())
	}

	return result, nil
}
