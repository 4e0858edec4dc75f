package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/12345678", r.URL.Path)
		require.Equal(t, "secret-token", r.URL.Query().Get("api_token"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]string{
				"nombres":          "MARIA ELENA",
				"apellido_paterno": "QUISPE",
				"apellido_materno": "HUAMAN",
			},
		})
	}))
	defer srv.Close()

	client := NewIdentityClient(srv.URL, "secret-token", 5*time.Second)
	persona, err := client.Lookup(context.Background(), "12345678")

	require.NoError(t, err)
	assert.Equal(t, "MARIA ELENA", persona.Nombres)
	assert.Equal(t, "QUISPE HUAMAN", persona.Apellido())
}

func TestIdentityLookupUnsuccessfulResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "dni no encontrado",
		})
	}))
	defer srv.Close()

	client := NewIdentityClient(srv.URL, "tok", 5*time.Second)
	_, err := client.Lookup(context.Background(), "99999999")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "dni no encontrado", upErr.Message)
}
