package probe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var defaultAddresses = map[string]common.Address{
	"camelotv3": common.HexToAddress("0x22427d20480de289795ca29c3adddb57a568e285"), // KUJI/WETH pool
}

// Registry maps provider names to the contract address the probe queries
// logs for. Built once at startup, read-only afterwards.
type Registry struct {
	addresses map[string]common.Address
}

func NewRegistry() *Registry {
	addresses := make(map[string]common.Address, len(defaultAddresses))
	for name, address := range defaultAddresses {
		addresses[name] = address
	}
	return &Registry{addresses: addresses}
}

// ParseRegistry extends the default table with entries of the form
// "name=0xaddress,name=0xaddress". An empty list yields the defaults.
func ParseRegistry(list string) (*Registry, error) {
	registry := NewRegistry()
	if strings.TrimSpace(list) == "" {
		return registry, nil
	}
	for _, entry := range strings.Split(list, ",") {
		name, address, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("registry entry %q: want name=address", entry)
		}
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("registry entry %q: invalid address %q", entry, address)
		}
		registry.addresses[name] = common.HexToAddress(address)
	}
	return registry, nil
}

// Resolve returns the contract address for provider, or ErrUnknownProvider.
func (r *Registry) Resolve(provider string) (common.Address, error) {
	address, ok := r.addresses[provider]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return address, nil
}

// Providers lists the registered provider names, sorted.
func (r *Registry) Providers() []string {
	providers := make([]string, 0, len(r.addresses))
	for name := range r.addresses {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}
