package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogWindow(t *testing.T) {
	cases := map[string]struct {
		height    uint64
		fromBlock string
		toBlock   string
	}{
		"head well past the window": {height: 5000, fromBlock: "0xbb8", toBlock: "0x1388"},
		"head inside the window":    {height: 1000, fromBlock: "0x0", toBlock: "0x3e8"},
		"head exactly at the edge":  {height: 2000, fromBlock: "0x0", toBlock: "0x7d0"},
		"one past the edge":         {height: 2001, fromBlock: "0x1", toBlock: "0x7d1"},
		"genesis":                   {height: 0, fromBlock: "0x0", toBlock: "0x0"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			window := NewLogWindow(tc.height)
			assert.Equal(t, tc.fromBlock, window.FromBlock())
			assert.Equal(t, tc.toBlock, window.ToBlock())
		})
	}
}
