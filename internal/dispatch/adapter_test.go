package dispatch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrale/pkg/functions"
)

func newTestAdapter(t *testing.T, register func(*functions.Registry)) *Adapter {
	t.Helper()
	d, _ := newTestDispatcher(t, register)
	return NewAdapter(d)
}

func TestAdapterNilEvent(t *testing.T) {
	a := newTestAdapter(t, nil)
	resp := a.Handle(context.Background(), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Unexpected Error", resp.Body)
}

func TestAdapterMissingBusiness(t *testing.T) {
	a := newTestAdapter(t, nil)
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{Path: "/"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "No business defined on path")
}

func TestAdapterSingleSegmentPathIsNotABusiness(t *testing.T) {
	a := newTestAdapter(t, nil)
	// One segment cannot name both a business and a function; this is the
	// caller's mistake, not an unknown tenant.
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/ghost",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "No business defined on path")
}

func TestAdapterMethodDefaultsToPost(t *testing.T) {
	a := newTestAdapter(t, func(r *functions.Registry) {
		r.Register("echo", echoFunction())
	})
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		PathParameters: map[string]string{"business": "intrale", "function": "echo"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, "POST", got["method"])
}

func TestAdapterOptionsShortCircuits(t *testing.T) {
	a := newTestAdapter(t, nil)
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{HTTPMethod: "OPTIONS"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
}

func TestAdapterTargetFromRawPath(t *testing.T) {
	a := newTestAdapter(t, func(r *functions.Registry) {
		r.Register("register/review", echoFunction())
	})
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/intrale/register/review",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, "intrale", got["business"])
	assert.Equal(t, "register/review", got["function"])
}

func TestAdapterLookupKeyCappedAtTwoSegments(t *testing.T) {
	a := newTestAdapter(t, func(r *functions.Registry) {
		r.Register("register/review", echoFunction())
	})
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/intrale/register/review/extra/tail",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	// Resolution keys on two segments, the operation still sees the rest.
	assert.Equal(t, "register/review/extra/tail", got["function"])
	assert.Equal(t, "register/review/extra/tail", got["path"])
}

func TestAdapterDecodesBase64Body(t *testing.T) {
	a := newTestAdapter(t, func(r *functions.Registry) {
		r.Register("echo", echoFunction())
	})
	payload := `{"email":"a@b.co"}`
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/intrale/echo",
		Body:            base64.StdEncoding.EncodeToString([]byte(payload)),
		IsBase64Encoded: true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, payload, got["body"])
}

func TestAdapterLeavesPlainBodyAlone(t *testing.T) {
	a := newTestAdapter(t, func(r *functions.Registry) {
		r.Register("echo", echoFunction())
	})
	payload := `{"email":"a@b.co"}`
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/intrale/echo",
		Body:       payload,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, payload, got["body"])
}

func TestAdapterUnknownBusinessMessage(t *testing.T) {
	a := newTestAdapter(t, nil)
	resp := a.Handle(context.Background(), &events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/ghost/signup",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "Business not avaiable with name ghost")
}
