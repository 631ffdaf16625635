package settings

import (
	"go.uber.org/zap"
)

// MergeResult lists the keys a merge touched, in source order.
type MergeResult struct {
	Added      []string
	Overridden []string
	Skipped    []string
}

// Changed reports whether the merge modified the destination.
func (r MergeResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Overridden) > 0
}

// Merge copies src keys into dst. New keys are appended. A key already in
// dst is overwritten in place when force is set and skipped otherwise.
func Merge(dst, src *Document, force bool, log *zap.Logger) MergeResult {
	if log == nil {
		log = zap.NewNop()
	}

	var result MergeResult
	if src == nil {
		return result
	}

	for pair := src.m.Oldest(); pair != nil; pair = pair.Next() {
		key, value := pair.Key, pair.Value

		if !dst.Has(key) {
			log.Debug("adding new setting", zap.String("key", key))
			dst.Set(key, value)
			result.Added = append(result.Added, key)
			continue
		}

		if !force {
			log.Info("setting already exists, skipping; use --force to override", zap.String("key", key))
			result.Skipped = append(result.Skipped, key)
			continue
		}

		log.Info("overriding existing setting", zap.String("key", key))
		dst.Set(key, value)
		result.Overridden = append(result.Overridden, key)
	}
	return result
}
