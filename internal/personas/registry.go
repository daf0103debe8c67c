package personas

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"inkwell/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry is a read-only mapping of built-in reader personas, keyed by
// slug. It is loaded once from the embedded YAML file and injected where
// needed, so tests can substitute their own registry.
type Registry struct {
	personas map[string]*models.Persona
	order    []string
}

type personaFile struct {
	Personas map[string]personaEntry `yaml:"personas"`
}

type personaEntry struct {
	Name         string              `yaml:"name"`
	AvatarURL    string              `yaml:"avatar_url"`
	Backstory    string              `yaml:"backstory"`
	WritingStyle models.WritingStyle `yaml:"writing_style"`
}

// NewRegistry creates a registry from the embedded personas YAML file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/personas.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read personas config: %w", err)
	}
	return newRegistryFromYAML(data)
}

// NewRegistryFromEntries builds a registry from explicit personas.
// Intended for tests.
func NewRegistryFromEntries(entries map[string]*models.Persona) *Registry {
	r := &Registry{personas: make(map[string]*models.Persona, len(entries))}
	for slug, p := range entries {
		r.personas[slug] = p
		r.order = append(r.order, slug)
	}
	sort.Strings(r.order)
	return r
}

func newRegistryFromYAML(data []byte) (*Registry, error) {
	var file personaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal personas config: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("personas config contains no personas")
	}

	r := &Registry{personas: make(map[string]*models.Persona, len(file.Personas))}
	for slug, entry := range file.Personas {
		style := entry.WritingStyle
		r.personas[slug] = &models.Persona{
			Ref:          slug,
			Type:         models.AuthorTypeBuiltinAgent,
			Name:         entry.Name,
			AvatarURL:    entry.AvatarURL,
			Backstory:    entry.Backstory,
			WritingStyle: &style,
		}
		r.order = append(r.order, slug)
	}
	sort.Strings(r.order)

	return r, nil
}

// Get returns the persona for the given slug, or false.
func (r *Registry) Get(slug string) (*models.Persona, bool) {
	p, ok := r.personas[slug]
	return p, ok
}

// List returns all built-in personas in stable slug order.
func (r *Registry) List() []*models.Persona {
	out := make([]*models.Persona, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.personas[slug])
	}
	return out
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.personas)
}
