package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight/shopsight/internal/insights"
)

func testRecord(t *testing.T) insights.Record {
	t.Helper()
	agg := insights.NewStoreInsights("https://store.example.com")
	agg.StoreName = "Glow Co"
	return insights.Record{
		ID:             "uuid-v7",
		StoreURL:       agg.StoreURL,
		StoreName:      agg.StoreName,
		Insights:       agg,
		CapturedAt:     time.Unix(1700000000, 0).UTC(),
		ProcessingTime: 2.5,
		Success:        true,
	}
}

func recordPayload(t *testing.T, rec insights.Record) []byte {
	t.Helper()
	payload, err := json.Marshal(rec.Insights)
	require.NoError(t, err)
	return payload
}

func TestSaveInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewInsightsStoreWithPool(mock, "insights_records")
	require.NoError(t, err)

	rec := testRecord(t)
	mock.ExpectExec("INSERT INTO insights_records").
		WithArgs(
			rec.ID,
			rec.StoreURL,
			rec.StoreName,
			recordPayload(t, rec),
			rec.CapturedAt,
			rec.ProcessingTime,
			rec.Success,
			rec.ErrorText,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := store.Save(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRequiresID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewInsightsStoreWithPool(mock, "insights_records")
	require.NoError(t, err)

	rec := testRecord(t)
	rec.ID = ""
	_, err = store.Save(context.Background(), rec)
	require.Error(t, err)
}

func TestLatestReturnsNewestRecord(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewInsightsStoreWithPool(mock, "insights_records")
	require.NoError(t, err)

	rec := testRecord(t)
	rows := pgxmock.NewRows([]string{
		"id", "store_url", "store_name", "payload", "captured_at", "processing_time", "success", "error_text",
	}).AddRow(rec.ID, rec.StoreURL, rec.StoreName, recordPayload(t, rec), rec.CapturedAt, rec.ProcessingTime, rec.Success, rec.ErrorText)

	mock.ExpectQuery("SELECT (.+) FROM insights_records").
		WithArgs(rec.StoreURL).
		WillReturnRows(rows)

	got, found, err := store.Latest(context.Background(), rec.StoreURL)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Glow Co", got.Insights.StoreName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestAbsent(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewInsightsStoreWithPool(mock, "insights_records")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM insights_records").
		WithArgs("https://missing.example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "store_url", "store_name", "payload", "captured_at", "processing_time", "success", "error_text",
		}))

	_, found, err := store.Latest(context.Background(), "https://missing.example.com")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListReturnsRecords(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewInsightsStoreWithPool(mock, "insights_records")
	require.NoError(t, err)

	rec := testRecord(t)
	rows := pgxmock.NewRows([]string{
		"id", "store_url", "store_name", "payload", "captured_at", "processing_time", "success", "error_text",
	}).AddRow(rec.ID, rec.StoreURL, rec.StoreName, recordPayload(t, rec), rec.CapturedAt, rec.ProcessingTime, rec.Success, rec.ErrorText)

	mock.ExpectQuery("SELECT (.+) FROM insights_records").
		WithArgs(50, 0).
		WillReturnRows(rows)

	records, err := store.List(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.StoreURL, records[0].StoreURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportsCount(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewInsightsStoreWithPool(mock, "insights_records")
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM insights_records").
		WithArgs("https://store.example.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	count, err := store.Delete(context.Background(), "https://store.example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectsInvalidTableName(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewInsightsStoreWithPool(mock, "insights; DROP TABLE users")
	require.Error(t, err)
}
