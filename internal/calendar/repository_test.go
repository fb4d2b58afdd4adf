package calendar

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepositoryList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "client_name", "event_start", "event_end", "property"}).
		AddRow("ev-1", "Jan Novak", start, start.Add(time.Hour), "Sunset Villa")
	mock.ExpectQuery(`SELECT id, client_name, event_start, event_end, property FROM calendar_events`).
		WillReturnRows(rows)

	repo := NewPostgresRepositoryWithQuerier(mock)
	events, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Jan Novak", events[0].ClientName)
	assert.Equal(t, start, events[0].Start)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO calendar_events`).
		WithArgs(pgxmock.AnyArg(), "Eva Svoboda", pgxmock.AnyArg(), pgxmock.AnyArg(), "Downtown Loft").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresRepositoryWithQuerier(mock)
	start := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	stored, err := repo.Create(t.Context(), &Event{
		ClientName: "Eva Svoboda",
		Start:      start,
		End:        start.Add(time.Hour),
		Property:   "Downtown Loft",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreateValidates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepositoryWithQuerier(mock)
	_, err = repo.Create(t.Context(), &Event{ClientName: ""})
	assert.ErrorIs(t, err, ErrInvalidEvent)
	require.NoError(t, mock.ExpectationsWereMet())
}
