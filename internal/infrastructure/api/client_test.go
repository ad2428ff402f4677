package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transferdesk/internal/shared/authorization"
)

func staticToken(token string) TokenSource {
	return func() string { return token }
}

func TestClient_CurrentUser_AttachesBearerPerRequest(t *testing.T) {
	var token atomic.Value
	token.Store("first")

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(map[string]User{"user": {ID: 1, Role: authorization.RoleUser}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, func() string { return token.Load().(string) })

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)

	// The credential is read at send time, so a token change between
	// requests is picked up without touching the client.
	token.Store("second")
	_, err = client.CurrentUser(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "Bearer first", seen[0])
	assert.Equal(t, "Bearer second", seen[1])
}

func TestClient_Login_RejectionCarriesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"password":["required"]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))

	_, err := client.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "The given data was invalid.", apiErr.Message())
	assert.Contains(t, apiErr.Payload(), "errors")
	assert.False(t, apiErr.IsUnauthorized())
}

func TestClient_Login_ValidatesInput(t *testing.T) {
	client := NewClient("http://unused.invalid", staticToken(""))

	_, err := client.Login(context.Background(), "", "pw")
	assert.Error(t, err, "missing email must fail before the network")

	_, err = client.Login(context.Background(), "not-an-email", "pw")
	assert.Error(t, err)

	_, err = client.Login(context.Background(), "a@b.com", "")
	assert.Error(t, err, "missing password must fail before the network")
}

func TestClient_CurrentUser_CachesIdentityPerToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]User{"user": {ID: 7, Role: authorization.RoleAdmin}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken("abc"), WithIdentityCacheTTL(time.Minute))

	for i := 0; i < 3; i++ {
		user, err := client.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
	}
	assert.Equal(t, int32(1), calls.Load())

	client.InvalidateIdentityCache("abc")

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Logout_IgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken("abc"))
	assert.NoError(t, client.Logout(context.Background()))
}

func TestClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	client := NewClient(srv.URL, staticToken(""))
	assert.NoError(t, client.Ping(context.Background()),
		"an HTTP response, even 401, means the backend is reachable")

	srv.Close()
	assert.Error(t, client.Ping(context.Background()))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Reyes", (&User{FirstName: "Ada", LastName: "Reyes"}).FullName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).FullName())
	assert.Equal(t, "Reyes", (&User{LastName: "Reyes"}).FullName())
}
