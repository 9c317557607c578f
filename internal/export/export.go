// Package export renders a prepared API call as a shell command or a
// code snippet that reproduces it outside the playground.
package export

import (
	"github.com/sadopc/zencrawl/internal/api"
)

// Request is the plain HTTP form of an API call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// FromCall builds the HTTP form of call as client would send it. The
// User-Agent header is left out.
func FromCall(client *api.Client, call api.Call) (Request, error) {
	body, err := call.Encode()
	if err != nil {
		return Request{}, err
	}
	headers := client.Headers()
	delete(headers, "User-Agent")
	return Request{
		Method:  "POST",
		URL:     client.URL(call),
		Headers: headers,
		Body:    body,
	}, nil
}
