package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	rpc "github.com/ybbus/jsonrpc/v3"
)

// call issues one JSON-RPC request with bounded retry. Only transport-level
// failures are retried; RPC-level errors are deterministic and malformed
// bodies won't improve on a second read, so both abort immediately.
func (p *Prober) call(ctx context.Context, client rpc.RPCClient, method string, params []interface{}) (*rpc.RPCResponse, error) {
	var response *rpc.RPCResponse

	operation := func() error {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}
		start := time.Now()
		r, err := client.Call(ctx, method, params)
		GetMetrics().RPCDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		if err != nil {
			err = classifyCallError(err)
			if errors.Is(err, ErrMalformedResponse) {
				return backoff.Permanent(err)
			}
			return err
		}
		response = r
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.retryInterval
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, p.retries), ctx)); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return response, nil
}

// classifyCallError sorts a client error into the probe's taxonomy. The
// jsonrpc client reports non-2xx statuses as *rpc.HTTPError and undecodable
// 2xx bodies as a plain error mentioning the decode failure.
func classifyCallError(err error) error {
	var httpErr *rpc.HTTPError
	if errors.As(err, &httpErr) {
		return &TransportError{Status: httpErr.Code, Err: err}
	}
	if strings.Contains(err.Error(), "could not decode body") {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &TransportError{Err: err}
}

func newRPCError(e *rpc.RPCError) *RPCError {
	return &RPCError{Code: e.Code, Message: e.Message, Data: e.Data}
}
