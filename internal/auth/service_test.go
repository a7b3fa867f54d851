package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fittrackapp/fittrack/internal/auth"
	"github.com/fittrackapp/fittrack/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noTokens struct{}

func (noTokens) Token() string { return "" }

func TestService_Login(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "sekret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"issued-token","user":{"_id":"u1","name":"Mile","email":"mile@example.com"}}`))
	}))
	defer testServer.Close()

	service := auth.NewService(client.NewClient(testServer.URL, testServer.Client(), noTokens{}, nil))

	user, token, err := service.Login(context.Background(), "mile@example.com", "sekret1")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "u1", user.ID)

	// the backend message comes through verbatim
	_, _, err = service.Login(context.Background(), "mile@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", client.ErrorMessage(err))
}

func TestService_Register(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)

		var params auth.RegisterParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"token": "issued-token",
			"user":  map[string]any{"_id": "u-new", "name": params.Name, "email": params.Email},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer testServer.Close()

	service := auth.NewService(client.NewClient(testServer.URL, testServer.Client(), noTokens{}, nil))

	user, token, err := service.Register(context.Background(), auth.RegisterParams{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "sekret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "Ana", user.Name)
}
