package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/altech-app/cloudsync/internal/config"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/models"
	"github.com/go-resty/resty/v2"
)

type httpRemoteStore struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.BaseURL, configures
// the underlying HTTP client with the resolved base URL and request timeout,
// and seeds the bearer token from adapterCfg.Token.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteStore(adapterCfg config.Adapter, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpRemoteStore{
		client: client,
		token:  strings.TrimSpace(adapterCfg.Token),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Available implements [RemoteStore]. The HTTP adapter is available once it
// holds a non-empty bearer token; the base URL was validated at construction.
func (h *httpRemoteStore) Available() bool {
	return h.Token() != ""
}

// GetDocument implements [RemoteStore]. It GETs
// /api/sync/documents/{kind} and decodes the response into a
// [models.Document]. Returns [ErrNotFound] (wrapped) on HTTP 404, which
// callers treat as "the server has no copy yet".
func (h *httpRemoteStore) GetDocument(ctx context.Context, kind models.DocumentKind) (models.Document, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("kind", string(kind)).
		Get("/api/sync/documents/{kind}")
	if err != nil {
		return models.Document{}, fmt.Errorf("get document request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Document{}, err
	}

	var doc models.Document
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode document response: %w", err)
	}

	return doc, nil
}

// SetDocument implements [RemoteStore]. It PUTs the payload to
// /api/sync/documents/{kind} tagged with deviceID and returns the
// server-assigned write timestamp from the response body.
func (h *httpRemoteStore) SetDocument(ctx context.Context, kind models.DocumentKind, payload json.RawMessage, deviceID string) (time.Time, error) {
	req := models.SetDocumentRequest{Payload: payload, DeviceID: deviceID}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("kind", string(kind)).
		SetBody(req).
		Put("/api/sync/documents/{kind}")
	if err != nil {
		return time.Time{}, fmt.Errorf("set document request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return time.Time{}, err
	}

	var out models.SetDocumentResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return time.Time{}, fmt.Errorf("decode set document response: %w", err)
	}

	return out.WrittenAt, nil
}

// ListQuotes implements [RemoteStore]. It GETs /api/sync/quotes and returns
// the decoded quote collection. An account with no quotes yields an empty
// slice.
func (h *httpRemoteStore) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	resp, err := h.authedRequest(ctx).Get("/api/sync/quotes")
	if err != nil {
		return nil, fmt.Errorf("list quotes request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out models.QuoteListResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode quote list response: %w", err)
	}

	return out.Quotes, nil
}

// UpsertQuotes implements [RemoteStore]. It sets req.Length and POSTs the
// batch to /api/sync/quotes. The whole batch shares the single
// server-assigned timestamp returned in the response body.
func (h *httpRemoteStore) UpsertQuotes(ctx context.Context, quotes []models.Quote, deviceID string) (time.Time, error) {
	req := models.UpsertQuotesRequest{
		Quotes:   quotes,
		DeviceID: deviceID,
		Length:   len(quotes),
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/quotes")
	if err != nil {
		return time.Time{}, fmt.Errorf("upsert quotes request: %w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return time.Time{}, err
	}

	var out models.UpsertQuotesResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return time.Time{}, fmt.Errorf("decode upsert quotes response: %w", err)
	}

	return out.WrittenAt, nil
}

// DeleteAccountData implements [RemoteStore]. It sends
// DELETE /api/sync/account, removing every document and quote the server
// holds for the account.
func (h *httpRemoteStore) DeleteAccountData(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Delete("/api/sync/account")
	if err != nil {
		return fmt.Errorf("delete account data request: %w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
