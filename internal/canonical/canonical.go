package canonical

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is an ingredient with the spellings that resolve to it
type Entry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// AliasIndex maps normalised ingredient spellings to one display name.
// It is immutable once built and safe for concurrent use.
type AliasIndex struct {
	index map[string]string
}

var (
	parenRe     = regexp.MustCompile(`\([^()]*\)`)
	separatorRe = regexp.MustCompile(`[-_/,]+`)

	// descriptor phrases split into words, longest first
	descriptorWords = func() [][]string {
		out := make([][]string, 0, len(descriptors))
		for _, d := range descriptors {
			out = append(out, strings.Fields(d))
		}
		sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
		return out
	}()
)

// Normalize lowercases a name, drops parentheticals, separators and descriptor words
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	for {
		next := parenRe.ReplaceAllString(s, " ")
		if next == s {
			break
		}
		s = next
	}
	s = strings.NewReplacer("(", " ", ")", " ").Replace(s)
	s = separatorRe.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	for {
		stripped := stripDescriptors(words)
		if len(stripped) == len(words) {
			break
		}
		words = stripped
	}
	return strings.Join(words, " ")
}

func stripDescriptors(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if n := matchDescriptor(words[i:]); n > 0 {
			i += n
			continue
		}
		out = append(out, words[i])
		i++
	}
	return out
}

func matchDescriptor(words []string) int {
	for _, phrase := range descriptorWords {
		if len(phrase) > len(words) {
			continue
		}
		match := true
		for k, w := range phrase {
			if words[k] != w {
				match = false
				break
			}
		}
		if match {
			return len(phrase)
		}
	}
	return 0
}

// NewAliasIndex builds an index from the ingredient database, seeded ingredients and curated extras.
// Canonical names always resolve to themselves; when two canonical names normalise to the same
// key the first one wins.
func NewAliasIndex(builtin, seeded []Entry, extras map[string]string) *AliasIndex {
	index := make(map[string]string)
	self := make(map[string]bool)

	sources := make([]Entry, 0, len(builtin)+len(seeded))
	sources = append(sources, builtin...)
	sources = append(sources, seeded...)

	for _, e := range sources {
		name := strings.TrimSpace(e.Name)
		if Normalize(name) == "" {
			continue
		}
		for _, a := range e.Aliases {
			if k := Normalize(a); k != "" {
				index[k] = name
			}
		}
	}

	extraKeys := make([]string, 0, len(extras))
	for k := range extras {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		nk := Normalize(k)
		if nk == "" || Normalize(extras[k]) == "" {
			continue
		}
		index[nk] = extras[k]
	}

	claim := func(name string) {
		k := Normalize(name)
		if k == "" || self[k] {
			return
		}
		index[k] = name
		self[k] = true
	}
	for _, e := range sources {
		if name := strings.TrimSpace(e.Name); name != "" {
			claim(name)
		}
	}
	for _, k := range extraKeys {
		claim(extras[k])
	}

	// point every key at the winner of its target's own key
	for k, v := range index {
		if w, ok := index[Normalize(v)]; ok {
			index[k] = w
		}
	}

	return &AliasIndex{index: index}
}

// Default builds the index from the built-in database, the given seeded ingredients and Extras
func Default(seeded []Entry) *AliasIndex {
	return NewAliasIndex(Builtin, seeded, Extras)
}

// Len returns the number of indexed spellings
func (ix *AliasIndex) Len() int {
	return len(ix.index)
}

// Lookup returns the canonical name for an already normalised key
func (ix *AliasIndex) Lookup(key string) (string, bool) {
	v, ok := ix.index[key]
	return v, ok
}

// Canonicalize resolves a raw ingredient name to its display name.
// Unknown names are title cased. An empty result means nothing but descriptors remained.
func (ix *AliasIndex) Canonicalize(raw string) string {
	key := Normalize(raw)
	if key == "" {
		return ""
	}
	if ix != nil {
		if v, ok := ix.index[key]; ok {
			return v
		}
	}
	return cases.Title(language.Und).String(key)
}

// Same reports whether two raw names resolve to the same ingredient
func (ix *AliasIndex) Same(a, b string) bool {
	ca := ix.Canonicalize(a)
	return ca != "" && ca == ix.Canonicalize(b)
}
