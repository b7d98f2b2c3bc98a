package upscale

import (
	"github.com/Skryldev/image-upscaler/core"
)

// DefaultAlgorithm is used when no override is given and no content profile
// is available.
const DefaultAlgorithm = "lanczos3"

// Builtin returns a registry populated with every built-in strategy.
func Builtin() *core.StrategyRegistry {
	reg := core.NewStrategyRegistry()
	for _, u := range All() {
		reg.Register(u.Name(), u)
	}
	return reg
}

// All returns one instance of every built-in strategy.
func All() []core.Upscaler {
	return []core.Upscaler{
		// Instant
		NearestNeighbor{},
		Bilinear{},
		// Fast
		Bicubic{},
		NewLanczos2(),
		NewLanczos(),
		NewLanczos4(),
		// Medium
		EdgeDirected{},
		ScaleByRules{},
		// Slow
		NewIBPFast(),
		NewIBP(),
		NewIBPQuality(),
		NewTotalVariation(),
	}
}

// ByTier returns the built-in strategies belonging to the given tier.
func ByTier(tier core.Tier) []core.Upscaler {
	var out []core.Upscaler
	for _, u := range All() {
		if u.Tier() == tier {
			out = append(out, u)
		}
	}
	return out
}
