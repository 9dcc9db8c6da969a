package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

func newTestClient(url string) Client {
	return NewClient(&config.Config{Meta: config.Meta{URL: url}})
}

func TestMetaClient_GetInsights_SeguePaginacao(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/act_123/insights", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		if r.URL.Query().Get("after") == "" {
			assert.Equal(t, "campaign", r.URL.Query().Get("level"))
			assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
			assert.Equal(t, `{"since":"2026-01-05","until":"2026-02-03"}`, r.URL.Query().Get("time_range"))
			fmt.Fprintf(w, `{"data":[{"campaign_id":"c1"}],"paging":{"next":"%s/act_123/insights?after=x"}}`, server.URL)
			return
		}
		fmt.Fprint(w, `{"data":[{"campaign_id":"c2"}],"paging":{}}`)
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL).GetInsights(context.Background(), "tok", "act_123", InsightLevelCampaign,
		domain.DateRange{Start: "2026-01-05", End: "2026-02-03"})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c1", rows[0]["campaign_id"])
	assert.Equal(t, "c2", rows[1]["campaign_id"])
}

func TestMetaClient_GetInsights_LimiteDePaginas(t *testing.T) {
	var calls int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		fmt.Fprintf(w, `{"data":[{"n":%d}],"paging":{"next":"%s/act_1/insights?after=%d"}}`, n, server.URL, n)
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL).GetInsights(context.Background(), "tok", "1", InsightLevelAd, domain.DateRange{})

	require.NoError(t, err)
	assert.Len(t, rows, MaxPages)
	assert.Equal(t, int32(MaxPages), atomic.LoadInt32(&calls))
}

func TestMetaClient_Erros(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantAuth bool
		wantMsg  string
	}{
		{
			name:    "Erro com envelope do Graph",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"(#100) Invalid parameter","type":"OAuthException","code":100}}`,
			wantMsg: "Meta API request failed (400): (#100) Invalid parameter",
		},
		{
			name:     "Token expirado vira AuthError",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"Session has expired","type":"OAuthException","code":190}}`,
			wantAuth: true,
		},
		{
			name:    "Corpo sem envelope",
			status:  http.StatusBadGateway,
			body:    `bad gateway`,
			wantMsg: "Meta API request failed (502): bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).GetLeadForms(context.Background(), "tok", "1")
			require.Error(t, err)

			var authErr *domain.AuthError
			assert.Equal(t, tt.wantAuth, errors.As(err, &authErr))
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}
