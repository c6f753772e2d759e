// Package prompts holds the chat prompts the remote oracle sends for each
// operation. Prompt files are JSON, embedded at compile time and parsed once.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Vars are the values substituted into {{.Name}} placeholders.
type Vars map[string]string

// Template is the prompt pair for one operation.
//
// Sections are optional fragments keyed by the variable they render. When the
// variable is non-blank, the fragment is formatted and bound to the
// placeholder {{.<Name>Section}} of the user prompt; otherwise that
// placeholder renders empty.
type Template struct {
	Name     string            `json:"-"`
	System   string            `json:"system"`
	User     string            `json:"user"`
	Sections map[string]string `json:"sections,omitempty"`
}

var (
	loadOnce  sync.Once
	templates map[string]*Template
	loadErr   error
)

func loaded() (map[string]*Template, error) {
	loadOnce.Do(func() {
		templates, loadErr = parseAll(promptFiles)
	})
	return templates, loadErr
}

// Load returns the template stored in <name>.json.
func Load(name string) (*Template, error) {
	all, err := loaded()
	if err != nil {
		return nil, err
	}
	tmpl, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("prompt %q not found", name)
	}
	return tmpl, nil
}

// MustLoad is Load for templates that ship with the binary.
func MustLoad(name string) *Template {
	tmpl, err := Load(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Names lists the embedded templates in sorted order.
func Names() ([]string, error) {
	all, err := loaded()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Render returns the user prompt with vars and the optional sections applied.
func (t *Template) Render(vars Vars) string {
	all := make(Vars, len(vars)+len(t.Sections))
	for key, value := range vars {
		all[key] = value
	}
	for key, fragment := range t.Sections {
		section := ""
		if strings.TrimSpace(vars[key]) != "" {
			section = Format(fragment, vars)
		}
		all[key+"Section"] = section
	}
	return Format(t.User, all)
}

// Format replaces {{.Key}} placeholders with values from vars. Unknown
// placeholders are left in place.
func Format(text string, vars Vars) string {
	if len(vars) == 0 || !strings.Contains(text, "{{.") {
		return text
	}
	pairs := make([]string, 0, 2*len(vars))
	for key, value := range vars {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func parseAll(fsys fs.FS) (map[string]*Template, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*Template, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
		}
		var tmpl Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
		}
		if tmpl.System == "" || tmpl.User == "" {
			return nil, fmt.Errorf("prompt file %s needs both system and user prompts", file)
		}
		tmpl.Name = strings.TrimSuffix(path.Base(file), ".json")
		parsed[tmpl.Name] = &tmpl
	}
	return parsed, nil
}
