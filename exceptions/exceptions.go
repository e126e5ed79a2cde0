// Package exceptions loads the user-maintained allow-list for translation audits.
//
// An exceptions file names strings that are already correct in the target
// language (known_good) and field references whose missing display name is
// intentional (skip_nqr). Loading never fails the caller: a missing or broken
// file simply means no exceptions.
package exceptions

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set is an unordered collection of strings.
type Set map[string]struct{}

// NewSet builds a set from the given values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is a member. A nil set has no members.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Add inserts values into the set.
func (s Set) Add(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Exceptions holds both allow-lists.
type Exceptions struct {
	SkipNQR   Set // nativeQueryRef values never flagged as missing a displayName
	KnownGood Set // exact values considered already translated
}

// Empty returns exceptions with two empty sets.
func Empty() Exceptions {
	return Exceptions{SkipNQR: Set{}, KnownGood: Set{}}
}

// Fingerprint returns a stable hash of both sets, used to key cached results.
func (e Exceptions) Fingerprint() string {
	h := sha256.New()
	for _, v := range e.SkipNQR.Sorted() {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, v := range e.KnownGood.Sorted() {
		h.Write([]byte(v))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load reads an exceptions file. An empty path, a missing file or any
// decoding problem yields empty exceptions.
func Load(path string) Exceptions {
	ex, err := Read(path)
	if err != nil {
		return Empty()
	}
	return ex
}

// Read is Load with the reason for falling back reported to the caller.
// The returned Exceptions is always usable, even when err is non-nil.
func Read(path string) (Exceptions, error) {
	if path == "" {
		return Empty(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return Empty(), fmt.Errorf("stat exceptions file: %w", err)
	}
	if info.IsDir() {
		return Empty(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return Empty(), fmt.Errorf("reading exceptions file: %w", err)
	}

	ex, err := Parse(data, formatOf(path))
	if err != nil {
		return Empty(), err
	}
	return ex, nil
}

// Format selects the decoder used by Parse.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes exceptions from raw file contents. Every key is optional
// and matched exactly. A key whose value has the wrong shape is ignored
// without affecting the others.
func Parse(data []byte, format Format) (Exceptions, error) {
	var decode func(key string, v any) bool
	switch format {
	case FormatYAML:
		var doc map[string]yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Empty(), fmt.Errorf("parsing exceptions yaml: %w", err)
		}
		decode = func(key string, v any) bool {
			node, ok := doc[key]
			return ok && node.Decode(v) == nil
		}
	default:
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return Empty(), fmt.Errorf("parsing exceptions json: %w", err)
		}
		decode = func(key string, v any) bool {
			raw, ok := doc[key]
			return ok && json.Unmarshal(raw, v) == nil
		}
	}

	ex := Empty()
	var translations map[string]string
	if decode("translations", &translations) {
		for _, v := range translations {
			ex.KnownGood.Add(v)
		}
	}
	for _, key := range []string{"skip", "skip_nqr"} {
		var refs []string
		if decode(key, &refs) {
			ex.SkipNQR.Add(refs...)
		}
	}
	var knownGood []string
	if decode("known_good", &knownGood) {
		ex.KnownGood.Add(knownGood...)
	}
	return ex, nil
}
