package usecase

import (
	"context"

	"adherence-srv/internal/dispatch"
	"adherence-srv/pkg/fcm"
)

func (uc *implUseCase) PushToUsers(ctx context.Context, userIDs []string, n fcm.Notification) (*dispatch.PushReport, error) {
	tokens, err := uc.store.TokensForUsers(ctx, userIDs)
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.PushToUsers.TokensForUsers: %v", err)
		return nil, err
	}

	raw := make([]string, 0, len(tokens))
	for _, t := range tokens {
		raw = append(raw, t.Token)
	}

	return uc.PushToTokens(ctx, raw, n)
}

func (uc *implUseCase) PushToTokens(ctx context.Context, tokens []string, n fcm.Notification) (*dispatch.PushReport, error) {
	tokens = uc.filterDead(tokens)
	if len(tokens) == 0 {
		uc.l.Infof(ctx, "internal.dispatch.usecase.PushToTokens: no delivery tokens, skipping %q", n.Title)
		return &dispatch.PushReport{Skipped: true}, nil
	}
	if uc.fcm == nil {
		uc.l.Warnf(ctx, "internal.dispatch.usecase.PushToTokens: push gateway disabled, skipping %q", n.Title)
		return &dispatch.PushReport{Skipped: true}, nil
	}

	// One gateway call regardless of batch size: the gateway is natively
	// multicast, no manual batching here.
	result, err := uc.fcm.SendMulticast(ctx, tokens, n)
	if err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.PushToTokens.SendMulticast: %v", err)
		return nil, err
	}

	report := &dispatch.PushReport{
		Requested: len(tokens),
		Delivered: result.SuccessCount,
		Failed:    result.FailureCount,
	}

	for _, msg := range result.Errors {
		uc.l.Warnf(ctx, "internal.dispatch.usecase.PushToTokens: transient send failure: %s", msg)
	}

	if len(result.InvalidTokens) > 0 {
		report.Retired = len(result.InvalidTokens)
		uc.retireTokens(ctx, result.InvalidTokens)
	}

	return report, nil
}

// retireTokens removes permanently deregistered tokens from the store and
// pins them in the in-process dead set so they cannot re-enter a later
// dispatch cycle within this run.
func (uc *implUseCase) retireTokens(ctx context.Context, tokens []string) {
	uc.markDead(tokens)

	if err := uc.store.DeleteTokens(ctx, tokens); err != nil {
		// The dead set still guards this run; the next run will retry the
		// delete when the gateway flags the token again.
		uc.l.Errorf(ctx, "internal.dispatch.usecase.retireTokens.DeleteTokens: %v", err)
	}
}
