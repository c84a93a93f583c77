package envelope

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOkUsesDefaultMessage(t *testing.T) {
	env := Ok(map[string]any{"orderId": 1})

	assert.Equal(t, 0, env.ErrorCode)
	assert.Equal(t, DefaultOkMessage, env.Message)
	assert.True(t, env.IsOk())
}

func TestFailCarriesNoPayload(t *testing.T) {
	env := Fail(404, "Order not found")

	assert.Equal(t, 404, env.ErrorCode)
	assert.Nil(t, env.Data)
	assert.False(t, env.IsOk())
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[int]int{
		0:   http.StatusOK,
		400: http.StatusBadRequest,
		401: http.StatusUnauthorized,
		403: http.StatusForbidden,
		404: http.StatusNotFound,
		409: http.StatusConflict,
		1:   http.StatusInternalServerError,
		500: http.StatusInternalServerError,
		503: http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, Envelope{ErrorCode: code}.HTTPStatus(), "code %d", code)
	}
}

func TestParseWellFormedEnvelope(t *testing.T) {
	env := Parse(`{"errorCode":0,"message":"Search results","data":[{"id":1,"name":"Twix"}]}`)

	assert.Equal(t, 0, env.ErrorCode)
	assert.Equal(t, "Search results", env.Message)
	require.NotNil(t, env.Data)

	rows, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestParseEmptyResponse(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		env := Parse(raw)
		assert.Equal(t, 500, env.ErrorCode)
		assert.Equal(t, "empty response", env.Message)
	}
}

func TestParseMalformedJSONNeverRaises(t *testing.T) {
	env := Parse(`{not valid json`)

	assert.Equal(t, 400, env.ErrorCode)
	assert.Contains(t, env.Message, "{not valid json")
}

func TestParseMalformedJSONPreviewIsBounded(t *testing.T) {
	raw := "{broken " + strings.Repeat("x", 2000)
	env := Parse(raw)

	assert.Equal(t, 400, env.ErrorCode)
	// preview contributes at most 300 chars plus the ellipsis
	assert.Contains(t, env.Message, raw[:300]+"...")
	assert.NotContains(t, env.Message, raw[:320])
}

func TestPreviewNeverSplitsARune(t *testing.T) {
	// a 4-byte rune straddling the byte limit must be dropped whole
	raw := strings.Repeat("x", 298) + "\U0001F600" + strings.Repeat("y", 100)
	got := Preview(raw)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", 298)+"...", got)

	short := strings.Repeat("é", 10)
	assert.Equal(t, short, Preview(short))
}

func TestParseMissingErrorCodeIsContractViolation(t *testing.T) {
	env := Parse(`{"message":"looks fine","data":{"id":9}}`)

	assert.Equal(t, 400, env.ErrorCode)
	assert.Contains(t, env.Message, "missing errorCode")
}

func TestParseIdempotentOnOwnOutput(t *testing.T) {
	first := Parse(`{"errorCode":500,"message":"ItemCreate failed: boom"}`)

	raw, err := json.Marshal(first)
	require.NoError(t, err)

	second := Parse(string(raw))
	assert.Equal(t, first.ErrorCode, second.ErrorCode)
	assert.Equal(t, first.Message, second.Message)
}

func TestParsePassesDataThroughOpaquely(t *testing.T) {
	env := Parse(`{"errorCode":0,"message":"OK","data":{"nested":{"k":"v"},"n":3}}`)

	obj, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), obj["n"])
}

func TestParseNullDataStaysNil(t *testing.T) {
	env := Parse(`{"errorCode":0,"message":"OK","data":null}`)
	assert.Nil(t, env.Data)
}
