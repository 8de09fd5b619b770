package configloader

import (
	"slices"

	"github.com/yaklabco/kumark/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins when it is non-zero.
//   - Booleans: only true propagates, so a file cannot unset a lower layer.
//   - Slices: override replaces base entirely when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.StrictSpans {
		result.StrictSpans = true
	}
	if override.Conformance {
		result.Conformance = true
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
