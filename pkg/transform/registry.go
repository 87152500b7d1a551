package transform

import (
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

// Priority orders providers when they are merged into a registry.
type Priority int

const (
	TryFirst Priority = -1
	Normal   Priority = 0
	TryLast  Priority = 1
)

func (p Priority) String() string {
	switch {
	case p < Normal:
		return "first"
	case p > Normal:
		return "last"
	}
	return "default"
}

// Factory builds the parser for an Entry. It is called once per registry.
type Factory func() Parser

// Entry binds a set of format names to one parser.
type Entry struct {
	Names   []string
	Factory Factory
}

// Provider contributes format entries to a registry.
type Provider struct {
	Name     string
	Priority Priority
	Entries  []Entry
}

// RegistryOpts configures NewRegistry.
type RegistryOpts struct {
	// Providers are merged after the built-in catalogue and the
	// process-wide plugins, subject to their priority.
	Providers []Provider
	// ExcludeDefaults leaves the built-in catalogue out.
	ExcludeDefaults bool
	// ExcludePlugins ignores providers added with Register.
	ExcludePlugins bool
	// Strict makes a second claim on a canonical name an error instead
	// of being shadowed by the first.
	Strict    bool
	NoContent NoContentPolicy
	Logger    *zap.Logger
}

// Registry resolves format names to parsers. It is immutable once
// built and safe for concurrent lookups.
type Registry struct {
	parsers map[string]Parser
	owners  map[string]string
	base    Parser
}

// NewRegistry merges providers into a registry. Providers are ordered
// by priority, ties broken by registration order; the first provider
// to claim a canonical name keeps it. Only strict registries fail.
func NewRegistry(opts RegistryOpts) (*Registry, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var providers []Provider
	if !opts.ExcludeDefaults {
		providers = append(providers, builtinProvider(opts.NoContent))
	}
	if !opts.ExcludePlugins {
		providers = append(providers, Plugins()...)
	}
	providers = append(providers, opts.Providers...)
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority < providers[j].Priority
	})

	r := &Registry{
		parsers: make(map[string]Parser),
		owners:  make(map[string]string),
		base:    baseParser{},
	}
	for _, p := range providers {
		for _, e := range p.Entries {
			if e.Factory == nil {
				continue
			}
			var parser Parser
			for _, name := range e.Names {
				key := CanonicalName(name)
				if key == "" {
					continue
				}
				if owner, taken := r.owners[key]; taken {
					if owner == p.Name {
						continue
					}
					if opts.Strict {
						return nil, &xbrlerr.AmbiguousFormatError{Name: key, Claimed: owner, Conflict: p.Name}
					}
					log.Debug("format name shadowed",
						zap.String("format", key),
						zap.String("provider", p.Name),
						zap.String("claimed_by", owner))
					continue
				}
				if parser == nil {
					parser = e.Factory()
				}
				r.parsers[key] = parser
				r.owners[key] = p.Name
			}
		}
	}
	return r, nil
}

// Lookup returns the parser for a format written as "ns:name" or
// "name". An empty format selects the plain number parser.
func (r *Registry) Lookup(format string) (Parser, error) {
	if strings.TrimSpace(format) == "" {
		return r.base, nil
	}
	ns, name := SplitFormat(format)
	if p, ok := r.parsers[CanonicalName(name)]; ok {
		return p, nil
	}
	return nil, &xbrlerr.UnknownFormatError{Format: name, Namespace: ns}
}

// Parse normalizes raw with the parser selected by d.
func (r *Registry) Parse(raw string, d Descriptor) (Value, error) {
	p, err := r.Lookup(d.Format())
	if err != nil {
		return Value{}, err
	}
	return p.Parse(raw, d)
}

// Has reports whether the format resolves to a parser.
func (r *Registry) Has(format string) bool {
	_, ok := r.parsers[CanonicalName(format)]
	return ok
}

// Names returns every canonical format name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Owner returns the provider that claimed a format name.
func (r *Registry) Owner(format string) (string, bool) {
	owner, ok := r.owners[CanonicalName(format)]
	return owner, ok
}
