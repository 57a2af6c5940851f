package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/altech-app/cloudsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// listQuotes
// ─────────────────────────────────────────────

func TestListQuotes_ReturnsCollectionWithLength(t *testing.T) {
	h, _, quoteRepository := newTestHandler(t)

	stored := []models.Quote{
		{ID: "q1", Name: "Quote One", Data: json.RawMessage(`{"total":100}`)},
		{ID: "q2", Name: "Quote Two", Data: json.RawMessage(`{"total":250}`)},
	}
	quoteRepository.EXPECT().
		ListQuotes(gomock.Any(), testAccountID).
		Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sync/quotes", nil)
	req = authedRequest(req, testAccountID)
	rec := httptest.NewRecorder()

	h.listQuotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.QuoteListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Length)
	assert.Len(t, resp.Quotes, 2)
	assert.Equal(t, "q1", resp.Quotes[0].ID)
}

func TestListQuotes_EmptyAccount(t *testing.T) {
	h, _, quoteRepository := newTestHandler(t)

	quoteRepository.EXPECT().
		ListQuotes(gomock.Any(), testAccountID).
		Return([]models.Quote{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sync/quotes", nil)
	req = authedRequest(req, testAccountID)
	rec := httptest.NewRecorder()

	h.listQuotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.QuoteListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Length)
}

func TestListQuotes_NoAccountID(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sync/quotes", nil)
	req = authedRequest(req, "")
	rec := httptest.NewRecorder()

	h.listQuotes(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// upsertQuotes
// ─────────────────────────────────────────────

func TestUpsertQuotes_AppliesBatch(t *testing.T) {
	h, _, quoteRepository := newTestHandler(t)

	writtenAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quotes := []models.Quote{
		{ID: "q1", Name: "Quote One", Data: json.RawMessage(`{"total":100}`)},
	}
	quoteRepository.EXPECT().
		UpsertQuotes(gomock.Any(), testAccountID, quotes, "dev_lx2k9_a1b2c3d4").
		Return(writtenAt, nil)

	body, err := json.Marshal(models.UpsertQuotesRequest{
		Quotes:   quotes,
		DeviceID: "dev_lx2k9_a1b2c3d4",
		Length:   1,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/quotes", bytes.NewReader(body))
	req = authedRequest(req, testAccountID)
	rec := httptest.NewRecorder()

	h.upsertQuotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UpsertQuotesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, writtenAt.Equal(resp.WrittenAt))
}

func TestUpsertQuotes_EmptyBatchRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body, err := json.Marshal(models.UpsertQuotesRequest{DeviceID: "dev_lx2k9_a1b2c3d4"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/quotes", bytes.NewReader(body))
	req = authedRequest(req, testAccountID)
	rec := httptest.NewRecorder()

	h.upsertQuotes(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertQuotes_LengthMismatchRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body, err := json.Marshal(models.UpsertQuotesRequest{
		Quotes:   []models.Quote{{ID: "q1", Data: json.RawMessage(`{}`)}},
		DeviceID: "dev_lx2k9_a1b2c3d4",
		Length:   5,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/quotes", bytes.NewReader(body))
	req = authedRequest(req, testAccountID)
	rec := httptest.NewRecorder()

	h.upsertQuotes(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
