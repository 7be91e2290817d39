package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adherence-srv/internal/model"
	"adherence-srv/pkg/log"
)

func setupMockStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	store := New(log.NewNop(), db)
	store.clock = func() time.Time {
		return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	}

	return db, mock, store
}

func TestInsertAlertLog_FirstWriterWins(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO alert_log`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.InsertAlertLog(context.Background(), model.AlertLogEntry{
		SubjectID: "med-1",
		Kind:      model.AlertKindLowStock,
		AlertDate: "2026-03-02",
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAlertLog_ConflictReturnsNotCreated(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	// ON CONFLICT DO NOTHING: the losing writer affects zero rows.
	mock.ExpectExec(`INSERT INTO alert_log`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := store.InsertAlertLog(context.Background(), model.AlertLogEntry{
		SubjectID: "med-1",
		Kind:      model.AlertKindLowStock,
		AlertDate: "2026-03-02",
	})

	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissedDoses_BindsRows(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"prescription_id", "patient_id", "patient_name", "patient_user_id", "medication_name"}).
		AddRow("rx-1", "p-1", "Alice", "u-1", "Metformin").
		AddRow("rx-2", "p-2", "Bob", "u-2", "Insulin")

	mock.ExpectQuery(`FROM get_missed_doses`).
		WithArgs("09:45", "2026-03-02").
		WillReturnRows(rows)

	doses, err := store.MissedDoses(context.Background(), "09:45", "2026-03-02")

	require.NoError(t, err)
	require.Len(t, doses, 2)
	assert.Equal(t, "Metformin", doses[0].MedicationName)
	assert.Equal(t, "u-2", doses[1].PatientUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokensForUsers_EmptyInputSkipsQuery(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	tokens, err := store.TokensForUsers(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokensForUsers_RejectsMalformedIDs(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	_, err := store.TokensForUsers(context.Background(), []string{"'; DROP TABLE delivery_tokens;--"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokensForUsers_BindsRows(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	userID := "11111111-1111-4111-8111-111111111111"
	rows := sqlmock.NewRows([]string{"token", "user_id", "created_at"}).
		AddRow("tok-1", userID, time.Now()).
		AddRow("tok-2", userID, time.Now())

	mock.ExpectQuery(`FROM delivery_tokens`).
		WithArgs(userID).
		WillReturnRows(rows)

	tokens, err := store.TokensForUsers(context.Background(), []string{userID})

	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "tok-1", tokens[0].Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTokens(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM delivery_tokens`).
		WithArgs("dead-1", "dead-2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := store.DeleteTokens(context.Background(), []string{"dead-1", "dead-2"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWeeklyStats_BindsRows(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	start := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"caregiver_email", "caregiver_name", "patient_id", "patient_name", "expected_doses", "taken_doses"}).
		AddRow("cg@example.com", "Carol", "p-1", "Alice", 14, 12)

	mock.ExpectQuery(`FROM get_weekly_stats`).
		WillReturnRows(rows)

	stats, err := store.WeeklyStats(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 86, stats[0].AdherenceRate())
	assert.NoError(t, mock.ExpectationsWereMet())
}
