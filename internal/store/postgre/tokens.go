package postgres

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"adherence-srv/internal/model"
	postgresPkg "adherence-srv/pkg/postgre"
)

// TokensForUsers returns every registered delivery token for the given
// users. A user with several devices yields several tokens.
func (s *Store) TokensForUsers(ctx context.Context, userIDs []string) ([]model.DeliveryToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	if err := postgresPkg.ValidateUUIDs(userIDs); err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.TokensForUsers.ValidateUUIDs: %v", err)
		return nil, err
	}

	var rows []model.DeliveryToken
	err := queries.Raw(
		`SELECT token, user_id, created_at FROM delivery_tokens
		  WHERE user_id IN (`+postgresPkg.InPlaceholders(len(userIDs), 1)+`)`,
		postgresPkg.ToInterfaceSlice(userIDs)...,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.TokensForUsers.Bind: %v", err)
		return nil, errors.Wrap(err, "query delivery tokens")
	}
	return rows, nil
}

// DeleteTokens removes push tokens the gateway reported as permanently
// deregistered.
func (s *Store) DeleteTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM delivery_tokens WHERE token IN (`+postgresPkg.InPlaceholders(len(tokens), 1)+`)`,
		postgresPkg.ToInterfaceSlice(tokens)...,
	)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.DeleteTokens.Exec: %v", err)
		return errors.Wrap(err, "delete delivery tokens")
	}

	s.l.Infof(ctx, "internal.store.postgres.DeleteTokens: removed %d dead tokens", len(tokens))
	return nil
}
