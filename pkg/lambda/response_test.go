package lambda

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFixedHeaders(t *testing.T, headers map[string]string) {
	t.Helper()
	assert.Equal(t, "application/json", headers["Content-Type"])
	assert.Equal(t, "*", headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "Content-Type", headers["Access-Control-Allow-Headers"])
	assert.Equal(t, "OPTIONS,GET,POST,PUT,DELETE", headers["Access-Control-Allow-Methods"])
}

func TestResponseBuilder_JSON(t *testing.T) {
	b := NewResponseBuilder(CORSHeaders{})

	resp, err := b.JSON(http.StatusCreated, map[string]interface{}{"id": "abc", "completed": false})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":"abc","completed":false}`, string(resp.Body))
	assertFixedHeaders(t, resp.Headers)
}

func TestResponseBuilder_JSONMarshalError(t *testing.T) {
	b := NewResponseBuilder(DefaultCORSHeaders())

	_, err := b.JSON(http.StatusOK, map[string]interface{}{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestResponseBuilder_EmptyAndPreflight(t *testing.T) {
	b := NewResponseBuilder(DefaultCORSHeaders())

	empty := b.Empty(http.StatusNoContent)
	assert.Equal(t, http.StatusNoContent, empty.StatusCode)
	assert.Empty(t, empty.Body)
	assertFixedHeaders(t, empty.Headers)

	preflight := b.Preflight()
	assert.Equal(t, http.StatusOK, preflight.StatusCode)
	assert.Empty(t, preflight.Body)
	assertFixedHeaders(t, preflight.Headers)
}

func TestResponseBuilder_InternalError(t *testing.T) {
	b := NewResponseBuilder(DefaultCORSHeaders())

	resp := b.InternalError(errors.New(`store exploded: "quoted"`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.Equal(t, `store exploded: "quoted"`, body["error"])
	assertFixedHeaders(t, resp.Headers)

	fallback := b.InternalError(nil)
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(fallback.Body))
}

func TestResponseBuilder_CustomCORS(t *testing.T) {
	b := NewResponseBuilder(CORSHeaders{AllowOrigin: "https://example.com"})
	headers := b.Headers()

	assert.Equal(t, "https://example.com", headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "Content-Type", headers["Access-Control-Allow-Headers"])
}

func TestResponseBuilder_HeadersAreFresh(t *testing.T) {
	b := NewResponseBuilder(DefaultCORSHeaders())

	first := b.Headers()
	first["Content-Type"] = "text/plain"

	assert.Equal(t, "application/json", b.Headers()["Content-Type"])
}

func TestResponse_ToProxyResponse(t *testing.T) {
	b := NewResponseBuilder(DefaultCORSHeaders())
	resp, err := b.JSON(http.StatusOK, map[string]int{"count": 0})
	require.NoError(t, err)

	proxy := resp.ToProxyResponse()
	assert.Equal(t, http.StatusOK, proxy.StatusCode)
	assert.Equal(t, `{"count":0}`, proxy.Body)
	assertFixedHeaders(t, proxy.Headers)
}
