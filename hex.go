package probe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// FormatQuantity encodes a block height as a 0x-prefixed hex quantity.
func FormatQuantity(value uint64) string {
	return hexutil.EncodeUint64(value)
}

// ParseQuantity decodes a block height with base-prefix-aware semantics:
// "0x3e8" and "1000" both parse. Some endpoints return bare decimal.
func ParseQuantity(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	value, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse quantity %q: %w", s, err)
	}
	return value, nil
}
