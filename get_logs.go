package probe

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	rpc "github.com/ybbus/jsonrpc/v3"
)

const methodGetLogs = "eth_getLogs"

// Log is the wire form of an event log entry as eth_getLogs returns it.
type Log struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockHash        string   `json:"blockHash"`
	BlockNumber      string   `json:"blockNumber"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex string   `json:"transactionIndex"`
	LogIndex         string   `json:"logIndex"`
	Removed          bool     `json:"removed"`
}

// Height decodes the log's block number.
func (l Log) Height() (uint64, error) {
	return ParseQuantity(l.BlockNumber)
}

// GetLogsRequest is the eth_getLogs filter object. Topics stays an empty
// array, not null: no filtering, every event type at the address matches.
type GetLogsRequest struct {
	FromBlock string   `json:"fromBlock"`
	ToBlock   string   `json:"toBlock"`
	Address   []string `json:"address"`
	Topics    []string `json:"topics"`
}

func NewGetLogsRequest(address common.Address, window LogWindow) *GetLogsRequest {
	return &GetLogsRequest{
		FromBlock: window.FromBlock(),
		ToBlock:   window.ToBlock(),
		Address:   []string{address.Hex()},
		Topics:    []string{},
	}
}

// getLogs fetches logs for the window. A null result is not a failure: it
// means zero logs in the window, which the caller records on the outcome.
func (p *Prober) getLogs(ctx context.Context, client rpc.RPCClient, address common.Address, window LogWindow) ([]Log, error) {
	params := []interface{}{NewGetLogsRequest(address, window)}

	response, err := p.call(ctx, client, methodGetLogs, params)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, newRPCError(response.Error)
	}
	if response.Result == nil {
		return nil, nil
	}

	var logs []Log
	if err := response.GetObject(&logs); err != nil {
		return nil, fmt.Errorf("%w: logs result: %v", ErrMalformedResponse, err)
	}
	return logs, nil
}
