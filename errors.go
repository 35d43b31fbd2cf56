package probe

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider means the provider has no registry entry. The probe
	// fails before any network call is made.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoHeight means the height call succeeded at the transport and RPC
	// level but carried no usable block number.
	ErrNoHeight = errors.New("no height in response")

	// ErrMalformedResponse means the endpoint answered with something that is
	// not a decodable JSON-RPC response, or a result of the wrong shape.
	ErrMalformedResponse = errors.New("malformed rpc response")
)

// TransportError is a network failure or a non-2xx HTTP status. Status is 0
// when the request never produced a response.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RPCError carries the endpoint's JSON-RPC error payload verbatim.
type RPCError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Exit codes per failure kind so a monitoring wrapper can tell them apart.
const (
	ExitOK                = 0
	ExitFailed            = 1
	ExitUnknownProvider   = 2
	ExitTransportError    = 3
	ExitRPCError          = 4
	ExitNoHeight          = 5
	ExitMalformedResponse = 6
)

// ExitCode maps a probe error to its process exit code.
func ExitCode(err error) int {
	var transportErr *TransportError
	var rpcErr *RPCError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUnknownProvider):
		return ExitUnknownProvider
	case errors.As(err, &transportErr):
		return ExitTransportError
	case errors.As(err, &rpcErr):
		return ExitRPCError
	case errors.Is(err, ErrNoHeight):
		return ExitNoHeight
	case errors.Is(err, ErrMalformedResponse):
		return ExitMalformedResponse
	default:
		return ExitFailed
	}
}
