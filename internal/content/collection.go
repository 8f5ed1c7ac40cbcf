package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// DefaultBlogAuthor is filled in when a blog post has no author.
const DefaultBlogAuthor = "QuickSay Team"

// Collection is a typed group of MDX documents sharing one frontmatter schema.
type Collection struct {
	Name string
	// Base is the collection directory relative to the site root.
	Base string
	// Ext is the document extension matched anywhere below Base.
	Ext string

	schema     *jsonschema.Schema
	properties []string
	defaults   map[string]any
}

type schemaDoc struct {
	Properties map[string]struct {
		Default any `json:"default"`
	} `json:"properties"`
}

func newCollection(name string) (*Collection, error) {
	path := "schemas/" + name + ".schema.json"
	raw, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s schema: %w", name, err)
	}
	schema, err := jsonschema.CompileString(path, string(raw))
	if err != nil {
		return nil, fmt.Errorf("content: compile %s schema: %w", name, err)
	}

	var doc schemaDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("content: parse %s schema: %w", name, err)
	}
	c := &Collection{
		Name:     name,
		Base:     "src/content/" + name,
		Ext:      ".mdx",
		schema:   schema,
		defaults: map[string]any{},
	}
	for prop, def := range doc.Properties {
		c.properties = append(c.properties, prop)
		if def.Default != nil {
			c.defaults[prop] = def.Default
		}
	}
	sort.Strings(c.properties)
	return c, nil
}

// Collections returns the site's collections: docs, changelog and blog.
func Collections() ([]*Collection, error) {
	names := []string{"docs", "changelog", "blog"}
	out := make([]*Collection, 0, len(names))
	for _, name := range names {
		c, err := newCollection(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Lookup finds a collection by name.
func Lookup(name string) (*Collection, error) {
	switch name {
	case "docs", "changelog", "blog":
		return newCollection(name)
	default:
		return nil, fmt.Errorf("content: unknown collection %q", name)
	}
}

// Validate applies defaults, checks the frontmatter against the schema and
// returns only the declared fields. Unknown keys are dropped, not rejected.
func (c *Collection) Validate(frontmatter map[string]any) (map[string]any, error) {
	data := make(map[string]any, len(frontmatter)+len(c.defaults))
	for k, v := range frontmatter {
		data[k] = v
	}
	for k, v := range c.defaults {
		if _, ok := data[k]; !ok {
			data[k] = v
		}
	}

	doc, err := toJSONValue(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", c.Name, err)
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("content: %s: %w", c.Name, err)
	}

	out := make(map[string]any, len(c.properties))
	for _, prop := range c.properties {
		if v, ok := doc.(map[string]any)[prop]; ok {
			out[prop] = v
		}
	}
	return out, nil
}

// toJSONValue round-trips through JSON so YAML-decoded values take the
// shapes the schema validator expects.
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("frontmatter is not JSON-compatible: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
