package config

import "context"

// resolverKey is the context key for Resolver
type resolverKey struct{}

// Resolver provides lazy per-repo config resolution with caching.
// It merges the repo's local config file and the environment onto the global config.
type Resolver struct {
	global *Config
	getenv func(string) string
	cache  map[string]*Config // repoRoot -> effective config
}

// NewResolver creates a Resolver backed by the given global config.
// getenv is usually os.Getenv.
func NewResolver(global *Config, getenv func(string) string) *Resolver {
	return &Resolver{
		global: global,
		getenv: getenv,
		cache:  make(map[string]*Config),
	}
}

// ConfigForRepo returns the effective config for a work tree root.
// Results are cached per repoRoot.
func (r *Resolver) ConfigForRepo(repoRoot string) (*Config, error) {
	if cached, ok := r.cache[repoRoot]; ok {
		return cached, nil
	}

	local, err := LoadLocal(repoRoot)
	if err != nil {
		return nil, err
	}

	effective, err := ApplyEnv(Merge(r.global, local), r.getenv)
	if err != nil {
		return nil, err
	}

	r.cache[repoRoot] = effective
	return effective, nil
}

// Global returns the global config (without any local overrides).
func (r *Resolver) Global() *Config {
	return r.global
}

// Getenv reads an environment variable the way the resolver does.
func (r *Resolver) Getenv(key string) string {
	return r.getenv(key)
}

// WithResolver returns a new context with the Resolver stored in it.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the Resolver from context.
// Returns nil if no resolver is stored.
func ResolverFromContext(ctx context.Context) *Resolver {
	if r, ok := ctx.Value(resolverKey{}).(*Resolver); ok {
		return r
	}
	return nil
}
