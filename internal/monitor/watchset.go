package monitor

import (
	"fmt"

	"github.com/quillchain/quillwallet/pkg/types"
)

// WatchSet is the fixed set of recipient addresses a subscription cares
// about. Membership tests compare canonical address bytes, so the case
// of the hex strings a set was built from never affects matching.
type WatchSet struct {
	addrs map[types.Address]struct{}
}

// NewWatchSet builds a watch set from parsed addresses.
func NewWatchSet(addrs ...types.Address) WatchSet {
	set := WatchSet{addrs: make(map[types.Address]struct{}, len(addrs))}
	for _, a := range addrs {
		set.addrs[a] = struct{}{}
	}
	return set
}

// ParseWatchSet builds a watch set from hex address strings in any
// letter case.
func ParseWatchSet(addrs ...string) (WatchSet, error) {
	parsed := make([]types.Address, 0, len(addrs))
	for _, s := range addrs {
		a, err := types.ParseAddress(s)
		if err != nil {
			return WatchSet{}, fmt.Errorf("watch address %q: %w", s, err)
		}
		parsed = append(parsed, a)
	}
	return NewWatchSet(parsed...), nil
}

// Contains reports whether addr is watched.
func (w WatchSet) Contains(addr types.Address) bool {
	_, ok := w.addrs[addr]
	return ok
}

// Len returns the number of watched addresses.
func (w WatchSet) Len() int {
	return len(w.addrs)
}
