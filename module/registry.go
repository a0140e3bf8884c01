package module

import (
	"fmt"
	"sort"
	"sync"
)

// Factory returns a fresh module instance.
type Factory func() Module

// Registry maps module names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default holds the modules registered by package init functions.
var Default = NewRegistry()

// Register adds a factory. It panics when the name is empty or taken.
func (r *Registry) Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("module: Register needs a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		panic(fmt.Sprintf("%v: %s", ErrDuplicateModule, name))
	}
	r.factories[name] = f
}

func (r *Registry) New(name string) (Module, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	return f(), nil
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos describes every module, sorted by category then name.
func (r *Registry) Infos() []Info {
	names := r.Names()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		m, err := r.New(name)
		if err != nil {
			continue
		}
		infos = append(infos, m.Info())
		m.Destroy()
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Category < infos[j].Category
	})
	return infos
}

func (r *Registry) ByCategory() map[string][]Info {
	out := make(map[string][]Info)
	for _, info := range r.Infos() {
		out[info.Category] = append(out[info.Category], info)
	}
	return out
}

func Register(name string, f Factory) { Default.Register(name, f) }
func New(name string) (Module, error) { return Default.New(name) }
func Names() []string                 { return Default.Names() }
func Infos() []Info                   { return Default.Infos() }
func ByCategory() map[string][]Info   { return Default.ByCategory() }
