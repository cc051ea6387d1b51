package reference

import "fmt"

// Source identifies where a template originally came from.
type Source string

const (
	SourceBuiltin   Source = "builtin"
	SourceCommunity Source = "community"
	SourceClassic   Source = "classic"
)

// Template is a named, keyword-tagged PineScript sample used to seed
// generation prompts. Templates are immutable once loaded into a Library.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Source      Source   `json:"source"`
	Keywords    []string `json:"keywords"`
	Categories  []string `json:"categories"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
}

// Library is a read-only collection of templates, constructed once at process
// start and shared by reference. It has no mutation API.
type Library struct {
	templates []Template
}

// NewLibrary builds a library from the given templates, validating that every
// id is unique. The slice is copied so callers cannot mutate the library.
func NewLibrary(templates []Template) (*Library, error) {
	seen := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %q has an empty id", t.Name)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	copied := make([]Template, len(templates))
	copy(copied, templates)

	return &Library{templates: copied}, nil
}

// Templates returns the templates in library order.
func (l *Library) Templates() []Template {
	out := make([]Template, len(l.templates))
	copy(out, l.templates)
	return out
}

// Len returns the number of templates in the library.
func (l *Library) Len() int {
	return len(l.templates)
}

// Get returns the template with the given id, if present.
func (l *Library) Get(id string) (Template, bool) {
	for _, t := range l.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
