// Package oracle implements the breach ingest adapter against an
// XposedOrNot-style breach-analytics HTTP API.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"breachvault/internal/domain/ingest"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// NewClient builds a fetcher for the breach oracle. The timeout bounds the
// whole external call; callers never hold vault or ledger locks while the
// request is in flight.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{
		http: c,
		log:  log.With("component", "breach_oracle"),
	}
}

// analyticsResponse mirrors the oracle's payload. Fields are untrusted;
// anything that does not decode cleanly degrades to its zero value.
type analyticsResponse struct {
	Error           string `json:"Error"`
	ExposedBreaches struct {
		BreachesDetails []breachDetail `json:"breaches_details"`
	} `json:"ExposedBreaches"`
}

type breachDetail struct {
	Breach        string          `json:"breach"`
	XposedDate    string          `json:"xposed_date"`
	Details       string          `json:"details"`
	XposedData    string          `json:"xposed_data"`
	XposedRecords json.RawMessage `json:"xposed_records"`
}

// BreachesForEmail queries the oracle for email. HTTP 404 and an explicit
// "Not found" body both mean no known exposure and yield an empty list;
// transport failures, other non-2xx statuses and undecodable payloads are
// reported as ErrUpstream.
func (c *Client) BreachesForEmail(ctx context.Context, email string) ([]ingest.Sighting, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		Get("/v1/breach-analytics")
	if err != nil {
		c.log.Error("oracle request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ingest.ErrUpstream, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return []ingest.Sighting{}, nil
	}
	if !resp.IsSuccess() {
		c.log.Error("oracle returned error status", "status", resp.StatusCode())
		return nil, fmt.Errorf("%w: status %d", ingest.ErrUpstream, resp.StatusCode())
	}

	var payload analyticsResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		c.log.Error("oracle payload undecodable", "error", err)
		return nil, fmt.Errorf("%w: decode payload: %v", ingest.ErrUpstream, err)
	}

	if payload.Error == "Not found" {
		return []ingest.Sighting{}, nil
	}

	sightings := make([]ingest.Sighting, 0, len(payload.ExposedBreaches.BreachesDetails))
	for _, detail := range payload.ExposedBreaches.BreachesDetails {
		sightings = append(sightings, ingest.Sighting{
			Name:        detail.Breach,
			Date:        detail.XposedDate,
			Description: detail.Details,
			DataTypes:   detail.XposedData,
			Records:     parseCount(detail.XposedRecords),
		})
	}

	c.log.Debug("oracle reported sightings", "count", len(sightings))
	return sightings, nil
}

// parseCount reads the record count leniently: the oracle has been seen
// sending both bare numbers and quoted strings. Anything else is treated as
// absent.
func parseCount(raw json.RawMessage) *int64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
	}

	return nil
}
