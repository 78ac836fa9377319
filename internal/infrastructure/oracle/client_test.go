package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"breachvault/internal/domain/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, 2*time.Second, slog.Default())
}

func TestClient_BreachesForEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/breach-analytics", r.URL.Path)
		assert.Equal(t, "u@example.com", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ExposedBreaches": {
				"breaches_details": [
					{
						"breach": "Adobe",
						"xposed_date": "2013",
						"details": "Password breach",
						"xposed_data": "Emails;Passwords",
						"xposed_records": 152000000
					},
					{
						"breach": "LinkedIn",
						"xposed_date": "2012",
						"xposed_records": "164000000"
					}
				]
			}
		}`))
	})

	sightings, err := client.BreachesForEmail(context.Background(), "u@example.com")
	require.NoError(t, err)
	require.Len(t, sightings, 2)

	assert.Equal(t, ingest.Sighting{
		Name:        "Adobe",
		Date:        "2013",
		Description: "Password breach",
		DataTypes:   "Emails;Passwords",
		Records:     sightings[0].Records,
	}, sightings[0])
	require.NotNil(t, sightings[0].Records)
	assert.Equal(t, int64(152000000), *sightings[0].Records)

	// quoted record counts parse too, missing fields degrade to zero values
	assert.Equal(t, "LinkedIn", sightings[1].Name)
	assert.Empty(t, sightings[1].Description)
	assert.Empty(t, sightings[1].DataTypes)
	require.NotNil(t, sightings[1].Records)
	assert.Equal(t, int64(164000000), *sightings[1].Records)
}

func TestClient_BreachesForEmail_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http 404",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "not found body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"Error": "Not found"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			sightings, err := client.BreachesForEmail(context.Background(), "clean@example.com")
			require.NoError(t, err)
			assert.NotNil(t, sightings)
			assert.Empty(t, sightings)
		})
	}
}

func TestClient_BreachesForEmail_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "garbage payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("<html>definitely not json</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.BreachesForEmail(context.Background(), "u@example.com")
			assert.ErrorIs(t, err, ingest.ErrUpstream)
		})
	}
}

func TestClient_BreachesForEmail_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, slog.Default())

	_, err := client.BreachesForEmail(context.Background(), "u@example.com")
	assert.ErrorIs(t, err, ingest.ErrUpstream)
}

func TestClient_BreachesForEmail_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	})
	client.http.SetTimeout(50 * time.Millisecond)

	_, err := client.BreachesForEmail(context.Background(), "u@example.com")
	assert.ErrorIs(t, err, ingest.ErrUpstream)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *int64
	}{
		{name: "number", raw: `42`, expected: ptr(int64(42))},
		{name: "quoted number", raw: `"42"`, expected: ptr(int64(42))},
		{name: "null", raw: `null`, expected: nil},
		{name: "free text", raw: `"lots"`, expected: nil},
		{name: "object", raw: `{"n": 1}`, expected: nil},
		{name: "absent", raw: ``, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCount([]byte(tt.raw))
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func ptr[T any](v T) *T { return &v }
