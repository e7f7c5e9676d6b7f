package style

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// DefaultProfile names the profile used when none is requested.
const DefaultProfile = "default"

//go:embed profiles/*.yaml
var builtinFS embed.FS

var validate = validator.New()

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	t.normalize()
	if err := validate.Struct(&t); err != nil {
		return nil, fmt.Errorf("profile %q: %w", t.Name, err)
	}
	for shape, tr := range t.Treatment {
		if !tr.Valid() {
			return nil, fmt.Errorf("profile %q: unknown treatment %q for %q", t.Name, tr, shape)
		}
	}
	return &t, nil
}

// LoadFile reads a profile from disk.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Registry is a set of profiles addressed by ID.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, t := range Builtins() {
		r.Add(t)
	}
	return r
}

// Add registers p, replacing any profile with the same ID.
func (r *Registry) Add(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID()] = p
}

// Get looks up a profile by ID.
func (r *Registry) Get(id string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	return p, ok
}

// Names returns the registered IDs in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadDir registers every *.yaml and *.yml file in dir and returns how many
// were loaded. Files are read in name order.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, err
		}
		r.Add(t)
		n++
	}
	return n, nil
}

var (
	builtinsOnce sync.Once
	builtins     []*Table
)

// Builtins returns the profiles shipped with the package, sorted by name.
func Builtins() []*Table {
	builtinsOnce.Do(func() {
		entries, err := builtinFS.ReadDir("profiles")
		if err != nil {
			panic(fmt.Sprintf("style: read builtin profiles: %v", err))
		}
		for _, e := range entries {
			data, err := builtinFS.ReadFile("profiles/" + e.Name())
			if err != nil {
				panic(fmt.Sprintf("style: read %s: %v", e.Name(), err))
			}
			t, err := Parse(data)
			if err != nil {
				panic(fmt.Sprintf("style: builtin %s: %v", e.Name(), err))
			}
			builtins = append(builtins, t)
		}
		sort.Slice(builtins, func(i, j int) bool { return builtins[i].Name < builtins[j].Name })
	})
	return builtins
}

// Builtin returns the named built-in profile.
func Builtin(name string) (*Table, bool) {
	for _, t := range Builtins() {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
