package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibreTranslate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello", body["q"])
		assert.Equal(t, "en", body["source"])
		assert.Equal(t, "es", body["target"])
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "Hola"})
	}))
	defer ts.Close()

	c := New(TypeLibreTranslate, "", ts.URL)
	got, err := c.Translate(context.Background(), "Hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", got)
}

func TestLibreTranslateErrorSurfaced(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
	}))
	defer ts.Close()

	c := New(TypeLibreTranslate, "bad", ts.URL)
	_, err := c.Translate(context.Background(), "Hello", "en", "es")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestMyMemory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "Hello", r.URL.Query().Get("q"))
		assert.Equal(t, "en|es", r.URL.Query().Get("langpair"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"responseData":   map[string]string{"translatedText": "Hola"},
			"responseStatus": 200,
		})
	}))
	defer ts.Close()

	c := New(TypeMyMemory, "", ts.URL)
	got, err := c.Translate(context.Background(), "Hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "Hola", got)
}

func TestMyMemoryReportsErrorWithHTTP200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"responseData":    map[string]string{"translatedText": ""},
			"responseStatus":  "403",
			"responseDetails": "invalid language pair",
		})
	}))
	defer ts.Close()

	c := New(TypeMyMemory, "", ts.URL)
	_, err := c.Translate(context.Background(), "Hello", "en", "es")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid language pair")
}

func TestUnsupportedProvider(t *testing.T) {
	c := New("deepfake", "", "")
	_, err := c.Translate(context.Background(), "Hello", "en", "es")
	assert.Error(t, err)
}
