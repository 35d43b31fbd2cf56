package probe

import (
	"context"
	"fmt"

	rpc "github.com/ybbus/jsonrpc/v3"
)

const methodBlockNumber = "eth_blockNumber"

// getHeight fetches the current block height. An RPC error field is fatal;
// a missing or empty result is ErrNoHeight, distinct from RPCError because
// the transport and envelope were fine but carried nothing usable.
func (p *Prober) getHeight(ctx context.Context, client rpc.RPCClient) (uint64, error) {
	response, err := p.call(ctx, client, methodBlockNumber, []interface{}{})
	if err != nil {
		return 0, err
	}
	if response.Error != nil {
		return 0, newRPCError(response.Error)
	}
	if response.Result == nil {
		return 0, ErrNoHeight
	}

	var raw string
	if err := response.GetObject(&raw); err != nil {
		return 0, fmt.Errorf("%w: block number result: %v", ErrMalformedResponse, err)
	}
	if raw == "" {
		return 0, ErrNoHeight
	}

	height, err := ParseQuantity(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return height, nil
}
