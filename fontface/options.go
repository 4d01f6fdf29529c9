package fontface

// Option configures Face creation.
type Option func(*config)

// config holds configuration for Face.
type config struct {
	workers    int
	cacheLimit int
}

// defaultConfig returns the default face configuration.
func defaultConfig() config {
	return config{
		workers:    0,    // GOMAXPROCS
		cacheLimit: 4096, // enough for a few renders of a large font
	}
}

// WithWorkers sets the number of rasterization workers.
// A value of 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithCacheLimit sets the maximum number of cached glyph rasters.
// A value of 0 disables the cache limit.
func WithCacheLimit(n int) Option {
	return func(c *config) {
		c.cacheLimit = n
	}
}
