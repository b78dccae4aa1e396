package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/linkscan/internal/scan/repos/allowlist"
)

type factory struct {
	sizer allowlist.BloomSizer
}

// NewFactory returns a BloomFactory that asks sizer for filter parameters.
// A nil sizer uses NewSizer.
func NewFactory(sizer allowlist.BloomSizer) allowlist.BloomFactory {
	if sizer == nil {
		sizer = NewSizer()
	}
	return factory{sizer: sizer}
}

// New constructs a filter sized for capacity entries at the target FP rate.
func (f factory) New(capacity uint64, fpRate float64) allowlist.BloomFilter {
	m, k := f.sizer.Size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
