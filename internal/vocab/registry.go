package vocab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/midbel/distance"
)

// ErrUnknownVocabulary is wrapped by lookups of names that are not registered.
var ErrUnknownVocabulary = errors.New("unknown vocabulary")

// UnknownError carries near-miss names for an unknown vocabulary.
type UnknownError struct {
	Name   string
	Others []string
}

func (e UnknownError) Error() string {
	msg := fmt.Sprintf("unknown vocabulary %q", e.Name)
	if len(e.Others) == 0 {
		return msg
	}
	quoted := make([]string, len(e.Others))
	for i, o := range e.Others {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	return msg + " (did you mean " + strings.Join(quoted, " or ") + "?)"
}

func (e UnknownError) Unwrap() error { return ErrUnknownVocabulary }

// Registry indexes vocabularies by name.
type Registry struct {
	order  []*Vocabulary
	byName map[string]*Vocabulary
}

// NewRegistry returns a registry holding the built-ins followed by extra.
func NewRegistry(extra ...*Vocabulary) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Vocabulary)}
	for _, v := range append(Builtins(), extra...) {
		if v == nil {
			continue
		}
		if _, dup := r.byName[v.Name()]; dup {
			return nil, &ConfigError{Vocabulary: v.Name(), Reason: "defined more than once"}
		}
		r.byName[v.Name()] = v
		r.order = append(r.order, v)
	}
	return r, nil
}

var defaultRegistry, _ = NewRegistry()

// Default returns the registry of built-in vocabularies.
func Default() *Registry { return defaultRegistry }

// Lookup resolves a vocabulary name in the default registry.
func Lookup(name string) (*Vocabulary, error) {
	return defaultRegistry.Lookup(name)
}

// Lookup resolves name, suggesting close names when it is unknown.
func (r *Registry) Lookup(name string) (*Vocabulary, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if v, ok := r.byName[key]; ok {
		return v, nil
	}
	if v, ok := r.byName[name]; ok {
		return v, nil
	}
	return nil, UnknownError{Name: name, Others: distance.Levenshtein(key, r.Names())}
}

// Names lists registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, v := range r.order {
		out[i] = v.Name()
	}
	return out
}

// All returns the registered vocabularies in registration order.
func (r *Registry) All() []*Vocabulary {
	out := make([]*Vocabulary, len(r.order))
	copy(out, r.order)
	return out
}

// Description is what one vocabulary knows about a token.
type Description struct {
	Vocabulary string
	Side       Side
	Entry      Entry
}

// Describe looks token up in every vocabulary. Keyword hits come back once per
// vocabulary so callers can show each glyph spelling.
func (r *Registry) Describe(token string) []Description {
	var out []Description
	for _, v := range r.order {
		if e, side, ok := v.Entry(token); ok {
			out = append(out, Description{Vocabulary: v.Name(), Side: side, Entry: e})
		}
	}
	return out
}

// Suggest returns keywords and glyphs close to token.
func (r *Registry) Suggest(token string) []string {
	seen := make(map[string]struct{})
	var pool []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		pool = append(pool, s)
	}
	for _, kw := range Keywords {
		add(kw)
	}
	for _, v := range r.order {
		for _, e := range v.entries {
			add(e.Glyph)
		}
	}
	return distance.Levenshtein(token, pool)
}

// TokenAt finds the longest keyword or glyph covering off across all vocabularies.
func (r *Registry) TokenAt(text string, off int) (Match, bool) {
	var best Match
	found := false
	for _, v := range r.order {
		m, ok := v.TokenAt(text, off)
		if !ok {
			continue
		}
		if !found || m.End-m.Start > best.End-best.Start {
			best = m
			found = true
		}
	}
	return best, found
}
