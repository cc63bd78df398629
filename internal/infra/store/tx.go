package store

import (
	"context"
	"slices"

	"storefront/internal/domain/repository"
)

type txKey struct{}

// overlay buffers the writes of one transaction.
type overlay struct {
	owner  *kvStore
	order  []string
	writes map[string]repository.Mutation
}

func newOverlay(owner *kvStore) *overlay {
	return &overlay{owner: owner, writes: make(map[string]repository.Mutation)}
}

func (o *overlay) put(m repository.Mutation) {
	if _, ok := o.writes[m.Key]; !ok {
		o.order = append(o.order, m.Key)
	}
	o.writes[m.Key] = m
}

func (o *overlay) lookup(key string) (repository.Mutation, bool) {
	m, ok := o.writes[key]

	return m, ok
}

func (o *overlay) mutations() []repository.Mutation {
	out := make([]repository.Mutation, 0, len(o.order))
	for _, key := range o.order {
		out = append(out, o.writes[key])
	}

	return out
}

// mergeKeys applies the buffered writes to a driver key listing.
func (o *overlay) mergeKeys(keys []string) []string {
	set := make(map[string]struct{}, len(keys)+len(o.writes))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	for key, m := range o.writes {
		if m.Delete {
			delete(set, key)
		} else {
			set[key] = struct{}{}
		}
	}

	merged := make([]string, 0, len(set))
	for k := range set {
		merged = append(merged, k)
	}
	slices.Sort(merged)

	return merged
}

func overlayFrom(ctx context.Context, owner *kvStore) *overlay {
	o, ok := ctx.Value(txKey{}).(*overlay)
	if !ok || o.owner != owner {
		return nil
	}

	return o
}
