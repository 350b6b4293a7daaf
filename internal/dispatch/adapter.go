// internal/dispatch/adapter.go
package dispatch

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"intrale/pkg/functions"
)

// Adapter bridges API Gateway proxy events onto the dispatcher, mirroring
// what the HTTP router does for plain requests.
type Adapter struct {
	d *Dispatcher
}

func NewAdapter(d *Dispatcher) *Adapter {
	return &Adapter{d: d}
}

// Handle translates one proxy event into a dispatch and back. A nil event
// cannot even be blamed on a caller, so it gets a bare 500.
func (a *Adapter) Handle(ctx context.Context, event *events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	if event == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       "Unexpected Error",
		}
	}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodPost
	}
	if strings.EqualFold(method, http.MethodOptions) {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: copyCORS()}
	}

	business, functionPath := eventTarget(event)
	if business == "" {
		return envelope(a.d.Dispatch(ctx, method, "", "", event.Headers, ""))
	}

	body := event.Body
	if event.IsBase64Encoded {
		if decoded, ok := DecodeBase64OrNil(event.Body); ok {
			body = decoded
		}
	} else if decoded, ok := DecodeBase64OrNil(event.Body); ok && decoded != "" {
		// Some gateways forget the flag; decode best-effort when the
		// payload is unmistakably base64.
		body = decoded
	}

	// The gateway route template only captures two function segments, so
	// resolution is keyed on those even when the raw path carries more.
	key := functionPath
	if parts := strings.Split(functionPath, "/"); len(parts) > 2 {
		key = strings.Join(parts[:2], "/")
	}
	return envelope(a.d.dispatch(ctx, method, business, key, functionPath, event.Headers, body))
}

func eventTarget(event *events.APIGatewayProxyRequest) (business, functionPath string) {
	business = event.PathParameters["business"]
	functionPath = strings.Trim(event.PathParameters["function"], "/")
	if business != "" {
		return business, functionPath
	}
	parts := strings.Split(strings.Trim(event.Path, "/"), "/")
	// A lone segment is not a business; the route always carries at least
	// business plus one function segment.
	if len(parts) < 2 || parts[0] == "" {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], "/")
}

func envelope(resp functions.Response) events.APIGatewayProxyResponse {
	headers := copyCORS()
	headers["Content-Type"] = "application/json"
	body, err := resp.JSON()
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Headers: headers, Body: "{}"}
	}
	return events.APIGatewayProxyResponse{StatusCode: resp.Status, Headers: headers, Body: string(body)}
}

func copyCORS() map[string]string {
	headers := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		headers[k] = v
	}
	return headers
}
