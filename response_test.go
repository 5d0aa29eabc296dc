package dondominio

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- NewResponse / accessors ----------

func TestNewResponse_Get(t *testing.T) {
	r := NewResponse(`{"success":true,"errorCode":0,"errorCodeMsg":"","action":"tool/hello","version":"1.1.2","responseData":{"ip":"1.2.3.4","lang":"en"},"messages":[]}`)

	ok, known := r.Success()
	require.True(t, known)
	require.True(t, ok)
	require.NoError(t, r.Err())

	v, found := r.Get("ip")
	require.True(t, found)
	assert.Equal(t, "1.2.3.4", v)
	assert.Equal(t, "en", r.GetString("lang"))

	v, found = r.Get("missing")
	assert.False(t, found)
	assert.Nil(t, v)
	assert.Equal(t, "", r.GetString("missing"))

	assert.Equal(t, "0", r.ErrorCode())
	assert.Equal(t, "tool/hello", r.Action())
	assert.Equal(t, "1.1.2", r.Version())
	assert.Empty(t, r.Messages())
}

func TestNewResponse_ResponseDataIsACopy(t *testing.T) {
	r := NewResponse(`{"success":true,"responseData":{"a":1}}`)
	d := r.ResponseData()
	d["a"] = "changed"
	assert.Equal(t, float64(1), mustGet(t, r, "a"))
}

func mustGet(t *testing.T, r *Response, key string) any {
	t.Helper()
	v, ok := r.Get(key)
	require.True(t, ok, "key %q", key)
	return v
}

func TestNewResponse_NotJSON(t *testing.T) {
	r := NewResponse("not json")

	_, known := r.Success()
	assert.False(t, known, "success must be unknown, not false")
	assert.Equal(t, "not json", r.Raw())

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrAPI)

	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "not json", re.Raw)
	assert.Error(t, re.Err)
}

func TestNewResponse_MissingSuccessFlag(t *testing.T) {
	r := NewResponse(`{"responseData":{"a":1}}`)
	_, known := r.Success()
	assert.False(t, known)

	var re *ResponseError
	require.ErrorAs(t, r.Err(), &re)
	assert.NoError(t, re.Err)
	assert.Contains(t, re.Error(), "missing success flag")
}

func TestNewResponse_ArrayResponseData(t *testing.T) {
	r := NewResponse(`{"success":true,"responseData":["a","b"]}`)
	require.NoError(t, r.Err())
	assert.Equal(t, "a", r.GetString("0"))
	assert.Equal(t, "b", r.GetString("1"))

	r = NewResponse(`{"success":true,"responseData":[]}`)
	assert.Empty(t, r.ResponseData())
}

func TestCode_Decoding(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{`{"errorCode":2010}`, "2010"},
		{`{"errorCode":"2010"}`, "2010"},
		{`{"errorCode":-1}`, "-1"},
		{`{"errorCode":null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var env Envelope
		require.NoError(t, json.Unmarshal([]byte(tt.in), &env), tt.in)
		assert.Equal(t, tt.want, env.ErrorCode, tt.in)
	}

	b, err := json.Marshal(Code("-1"))
	require.NoError(t, err)
	assert.Equal(t, "-1", string(b))
	b, err = json.Marshal(Code("E1"))
	require.NoError(t, err)
	assert.Equal(t, `"E1"`, string(b))
}

func TestMessages_Decoding(t *testing.T) {
	tests := map[string]Messages{
		`{"messages":"one"}`:          {"one"},
		`{"messages":["one","two"]}`:  {"one", "two"},
		`{"messages":[1,true]}`:       {"1", "true"},
		`{"messages":null}`:           nil,
	}
	for in, want := range tests {
		var env Envelope
		require.NoError(t, json.Unmarshal([]byte(in), &env), in)
		if diff := cmp.Diff(want, env.Messages); diff != "" {
			t.Errorf("%s (-want +got):\n%s", in, diff)
		}
	}
}

// ---------- Err / CastError ----------

func TestErr_MappedCode(t *testing.T) {
	raw := `{"success":false,"errorCode":2010,"errorCodeMsg":"Domain taken","action":"domain/create","messages":["domain taken"]}`
	resp, err := ParseResponse(raw)
	require.NotNil(t, resp)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrDomainTaken, apiErr.Kind)
	assert.Equal(t, "2010", apiErr.Code)
	assert.Equal(t, "domain taken", apiErr.Message)
	assert.Equal(t, "domain/create", apiErr.Action)

	ok, known := resp.Success()
	assert.True(t, known)
	assert.False(t, ok)
	assert.Equal(t, "Domain taken", resp.ErrorCodeMsg())
}

func TestCastError_Idempotent(t *testing.T) {
	f := false
	env := Envelope{Success: &f, ErrorCode: "2010", Messages: Messages{"domain taken"}}
	first := CastError(env)
	for i := 0; i < 3; i++ {
		again := CastError(env)
		assert.Equal(t, first, again)
		assert.ErrorIs(t, again, ErrDomainTaken)
		assert.Equal(t, "domain taken", again.Message)
		assert.Equal(t, "2010", again.Code)
	}
}

func TestCastError_JoinsMessages(t *testing.T) {
	f := false
	e := CastError(Envelope{Success: &f, ErrorCode: "1", Messages: Messages{"a", "b"}})
	assert.Equal(t, "a; b", e.Message)
	assert.Equal(t, ErrUndefined, e.Kind)
}

func TestCastError_UnknownCode(t *testing.T) {
	f := false
	e := CastError(Envelope{Success: &f, ErrorCode: "987654", Messages: Messages{"boom"}})
	assert.Equal(t, ErrAPI, e.Kind)
	assert.ErrorIs(t, e, ErrAPI)
	assert.Equal(t, "987654", e.Code)
}

func TestCastError_NoCode(t *testing.T) {
	for _, raw := range []string{
		`{"success":false,"messages":["?"]}`,
		`{"success":false,"errorCode":0}`,
	} {
		err := NewResponse(raw).Err()
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr, raw)
		assert.Equal(t, ErrAPI, apiErr.Kind, raw)
		assert.True(t, strings.HasPrefix(apiErr.Message, "unexpected error: {"), apiErr.Message)
		assert.Contains(t, apiErr.Message, `"success":false`)
	}
}

func TestValidationFailureEnvelope(t *testing.T) {
	resp := validationFailure([]string{`Parameter "domain" missing`})
	ok, known := resp.Success()
	assert.True(t, known)
	assert.False(t, ok)
	assert.Equal(t, "-1", resp.ErrorCode())
	assert.Equal(t, "Validation error", resp.ErrorCodeMsg())
	assert.Equal(t, []string{`Parameter "domain" missing`}, resp.Messages())

	err := resp.Err()
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrAPI)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestResponseOutput(t *testing.T) {
	r := NewResponse(`{"success":true,"responseData":{"ip":"1.2.3.4"}}`)
	out, err := r.Output(OutputJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip":"1.2.3.4"}`, out)

	_, err = r.Output("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
