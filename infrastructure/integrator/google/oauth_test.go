package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-sync-engine/internal/config"
)

func newOAuthTestClient(url string) *OAuthClient {
	return NewOAuthClient(&config.Config{
		GoogleOAuth: config.GoogleOAuth{TokenURL: url, ClientID: "client", ClientSecret: "secret"},
	})
}

func TestOAuthClient_Refresh(t *testing.T) {
	t.Run("usa expires_in da resposta", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "rt-1", r.PostForm.Get("refresh_token"))
			assert.Equal(t, "client", r.PostForm.Get("client_id"))
			fmt.Fprint(w, `{"access_token":"new-token","expires_in":1800}`)
		}))
		defer server.Close()

		token, lifetime, err := newOAuthTestClient(server.URL).Refresh(context.Background(), "rt-1")
		require.NoError(t, err)
		assert.Equal(t, "new-token", token)
		assert.Equal(t, 30*time.Minute, lifetime)
	})

	t.Run("sem expires_in vale uma hora", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"access_token":"new-token"}`)
		}))
		defer server.Close()

		_, lifetime, err := newOAuthTestClient(server.URL).Refresh(context.Background(), "rt-1")
		require.NoError(t, err)
		assert.Equal(t, time.Hour, lifetime)
	})

	t.Run("erro do endpoint de token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)
		}))
		defer server.Close()

		_, _, err := newOAuthTestClient(server.URL).Refresh(context.Background(), "rt-1")
		assert.EqualError(t, err, "Token refresh failed (400): Token has been expired or revoked.")
	})
}
