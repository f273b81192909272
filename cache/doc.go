// Package cache stores encoded renders so repeated requests skip the
// renderer.
//
// # Stores
//
// Memory is a sharded in-process LRU with optional expiry. Redis keeps
// entries in a shared Redis server so several service replicas reuse one
// another's renders.
//
//	store := cache.NewMemory(64)
//	c := cache.New(store, cache.WithTTL(24*time.Hour))
//	png, err := c.GetOrRender(ctx, cache.PreviewKey(cfg, params), renderPNG)
//
// # Keys
//
// PreviewKey hashes everything that can change preview pixels. Previews
// never draw aging, so two tokens that differ only in wear share a key.
// Interactive renders are not cached.
package cache
