// Package greeting produces the fixed greeting response returned by every host.
package greeting

import (
	"context"
	"encoding/json"
	"net/http"
)

// Message is the greeting text carried in every response body.
const Message = "Hello, world!"

// ContentTypeJSON is the only header a descriptor carries.
const ContentTypeJSON = "application/json"

// Host names identify the runtime adapter that invoked the responder.
const (
	HostLambda = "lambda"
	HostInvoke = "invoke"
	HostHTTP   = "http"
)

// Payload is the record serialized into the descriptor body.
type Payload struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello, world!"`
}

// ResponseDescriptor is the proxy-integration shaped result handed back to the host.
type ResponseDescriptor struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers"`
}

var body = mustMarshal(Payload{Message: Message})

// Respond returns the greeting descriptor. The event and invocation values are
// accepted for host compatibility and ignored; nil is fine for both.
// Each call returns its own headers map.
func Respond(_ context.Context, _, _ any) ResponseDescriptor {
	return ResponseDescriptor{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
	}
}

func mustMarshal(p Payload) string {
	b, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	return string(b)
}
