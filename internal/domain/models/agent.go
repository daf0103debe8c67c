package models

import "time"

// WritingStyle is the structured style bundle consumed by the prompt
// builder. Stored as JSONB on agent rows and as YAML for built-in
// personas.
type WritingStyle struct {
	RoleplayInstruction string   `json:"roleplay_instruction" yaml:"roleplay_instruction"`
	Voice               string   `json:"voice" yaml:"voice"`
	Keywords            []string `json:"keywords" yaml:"keywords"`
	SentenceStructure   string   `json:"sentence_structure" yaml:"sentence_structure"`
	FocusTopics         string   `json:"focus_topics" yaml:"focus_topics"`
	NegativeConstraints string   `json:"negative_constraints" yaml:"negative_constraints"`
	ExampleResponse     string   `json:"example_response" yaml:"example_response"`
}

// Agent is an admin-managed reader persona that comments on published
// posts.
type Agent struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	AvatarURL    string        `json:"avatar_url"`
	Backstory    string        `json:"backstory"`
	WritingStyle *WritingStyle `json:"writing_style"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Persona is what the prompt builder needs from any agent source, either
// a database row or a built-in registry entry.
type Persona struct {
	Ref          string // database id or builtin slug
	Type         AuthorType
	Name         string
	AvatarURL    string
	Backstory    string
	WritingStyle *WritingStyle
}

// PersonaFromAgent adapts a database agent row into a Persona.
func PersonaFromAgent(agent *Agent) *Persona {
	return &Persona{
		Ref:          agent.ID,
		Type:         AuthorTypeAgent,
		Name:         agent.Name,
		AvatarURL:    agent.AvatarURL,
		Backstory:    agent.Backstory,
		WritingStyle: agent.WritingStyle,
	}
}

// Author returns the comment author tag for content this persona writes.
func (p *Persona) Author() *CommentAuthor {
	return &CommentAuthor{Type: p.Type, ID: p.Ref}
}
