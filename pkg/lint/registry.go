package lint

import (
	"cmp"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Registry holds all registered lint rules.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry.
// If a rule with the same name already exists, it is replaced.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[rule.Name()] = rule
}

// RegisterAlias maps an alias to a canonical rule name.
// Used for ESLint compatibility (e.g., "eqeqeq" -> "no-double-equals").
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = name
}

// Get retrieves a rule by name or "group/name".
func (r *Registry) Get(key string) (Rule, bool) {
	_, rule, ok := r.Resolve(key)
	return rule, ok
}

// Resolve returns the canonical name and rule for a given key.
// The key can be a rule name, a qualified "group/name", or an alias.
// Returns (name, rule, found).
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byName[key]; ok {
		return rule.Name(), rule, true
	}
	// Try qualified name.
	for _, rule := range r.byName {
		if rule.Group()+"/"+rule.Name() == key {
			return rule.Name(), rule, true
		}
	}
	// Try alias
	if target, ok := r.aliases[key]; ok {
		if rule, ok := r.byName[target]; ok {
			return rule.Name(), rule, true
		}
	}
	return "", nil, false
}

// Rules returns all registered rules sorted by name.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Values(r.byName)

	// Sort by rule name for consistent, deterministic output.
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Name(), b.Name())
	})

	return result
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Keys(r.byName)
	slices.Sort(result)
	return result
}

// Groups returns the distinct rule groups in sorted order.
func (r *Registry) Groups() []string {
	groups := lo.Uniq(lo.Map(r.Rules(), func(rule Rule, _ int) string {
		return rule.Group()
	}))
	slices.Sort(groups)
	return groups
}

// ByGroup returns the rules of one group sorted by name.
func (r *Registry) ByGroup(group string) []Rule {
	return lo.Filter(r.Rules(), func(rule Rule, _ int) bool {
		return rule.Group() == group
	})
}

// Aliases returns the aliases of a canonical rule name in sorted order.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Keys(lo.PickByValues(r.aliases, []string{name}))
	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
