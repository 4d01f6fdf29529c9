// Package cache provides the generic LRU cache backing glyph rasterization.
//
// A Cache keeps at most a fixed number of entries and evicts the least
// recently used one when full:
//
//	c := cache.New[key, fontatlas.GlyphRaster](4096)
//	c.Set(k, raster)
//	raster, ok := c.Get(k)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
