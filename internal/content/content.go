// Package content loads and validates dialogue content packs.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/kotoba/internal/dialogue"
	"github.com/abhisek/kotoba/internal/vocab"
)

// SupportedMajor is the pack format major version this build reads.
const SupportedMajor = "v1"

// DefaultSource names the embedded pack in errors and logs.
const DefaultSource = "embedded:default.json"

//go:embed data/default.json
var defaultPack []byte

//go:embed data/schema.json
var schemaJSON []byte

const schemaURL = "schema://kotoba/content-pack.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Pack is a parsed content pack.
type Pack struct {
	Version string          `json:"version"`
	Title   string          `json:"title,omitempty"`
	Start   string          `json:"start"`
	Words   []vocab.Word    `json:"words"`
	Nodes   []dialogue.Node `json:"nodes"`

	// Source is where the pack was read from.
	Source string `json:"-"`
}

// Link is a choice whose target node does not exist. Such a choice ends
// the dialogue when picked.
type Link struct {
	NodeID      string
	ChoiceIndex int
	LeadsTo     string
}

// Default returns the embedded pack.
func Default() (*Pack, error) {
	return Parse(defaultPack, DefaultSource)
}

// Load reads the pack at path, or the embedded pack when path is empty.
func Load(path string) (*Pack, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	return Parse(data, path)
}

// Parse validates data against the pack schema, checks the version and the
// cross references, and decodes it.
func Parse(data []byte, source string) (*Pack, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := packSchema()
	if err != nil {
		return nil, fmt.Errorf("compile pack schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, &ValidationError{Source: source, Problems: schemaProblems(err), Err: err}
	}

	var p Pack
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	p.Source = source

	if problems := p.check(); len(problems) > 0 {
		return nil, &ValidationError{Source: source, Problems: problems}
	}
	return &p, nil
}

// WordCatalog builds the vocabulary catalog for the pack.
func (p *Pack) WordCatalog() *vocab.Catalog {
	return vocab.NewCatalog(p.Words)
}

// NodeCatalog builds the dialogue catalog for the pack.
func (p *Pack) NodeCatalog() *dialogue.Catalog {
	return dialogue.NewCatalog(p.Nodes)
}

// DanglingLinks lists choices that point at missing nodes, in node order.
func (p *Pack) DanglingLinks() []Link {
	ids := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		ids[n.ID] = true
	}
	var links []Link
	for _, n := range p.Nodes {
		for i, c := range n.Choices {
			if c.LeadsTo != "" && !ids[c.LeadsTo] {
				links = append(links, Link{NodeID: n.ID, ChoiceIndex: i, LeadsTo: c.LeadsTo})
			}
		}
	}
	return links
}

// check enforces the rules the schema cannot express.
func (p *Pack) check() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	v := p.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	switch {
	case !semver.IsValid(v):
		add("version %q is not a semantic version", p.Version)
	case semver.Major(v) != SupportedMajor:
		add("version %s is not supported (want %s.x)", p.Version, SupportedMajor)
	}

	words := make(map[string]bool, len(p.Words))
	for _, w := range p.Words {
		if words[w.ID] {
			add("duplicate word id %q", w.ID)
		}
		words[w.ID] = true
	}

	nodes := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if nodes[n.ID] {
			add("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = true
	}
	if !nodes[p.Start] {
		add("start node %q does not exist", p.Start)
	}

	for _, n := range p.Nodes {
		if n.SpeakerWordID != "" && !words[n.SpeakerWordID] {
			add("node %q: unknown speaker word %q", n.ID, n.SpeakerWordID)
		}
		for li, l := range n.Lines {
			for _, id := range l.WordIDs() {
				if !words[id] {
					add("node %q line %d: unknown word %q", n.ID, li, id)
				}
			}
		}
		if n.IsQuiz() && !hasCorrectChoice(n.Choices) {
			add("node %q: quiz has no correct choice", n.ID)
		}
	}
	return problems
}

func hasCorrectChoice(choices []dialogue.Choice) bool {
	for _, c := range choices {
		if c.Correct() {
			return true
		}
	}
	return false
}

func packSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// schemaProblems flattens a schema validation error into one line per cause.
func schemaProblems(err error) []string {
	var problems []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		problems = append(problems, line)
	}
	sort.Strings(problems)
	return problems
}
