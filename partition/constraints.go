package partition

import (
	"fmt"
	"regexp"
	"strings"

	"team-roulette/domain"
)

// separator matches the "and" tokens accepted between two names of a constraint line.
// Word separators need surrounding whitespace so names like "Roland" or "Etienne" stay whole.
var separator = regexp.MustCompile(`(?i)\s+(?:et|and)\s+|\s*[&,]\s*`)

// ParseWarning describes a constraint line that could not be read as a pair.
type ParseWarning struct {
	Line int // 1-based, counted over non-empty lines
	Raw  string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d ignored: %q", w.Line, w.Raw)
}

// ParseNames splits every text block on newlines and keeps the trimmed, non-empty lines.
// Duplicates are kept: two identical names are two people.
func ParseNames(texts ...string) []string {
	var names []string
	for _, text := range texts {
		for _, line := range strings.Split(text, "\n") {
			if name := strings.TrimSpace(line); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// ExtractConstraints reads forbidden pairs from raw lines.
//
// An even number (at least two) of non-empty lines is read as consecutive pairs.
// Otherwise every line must hold two names joined by "et", "and", "&" or ",".
// Lines that don't yield exactly two names are skipped and reported as warnings.
//
// Names found in constraints but missing from names are appended, in order of first
// appearance. The input slice is never modified.
func ExtractConstraints(lines []string, names []string) ([]domain.Pair, []string, []ParseWarning) {
	cleaned := ParseNames(lines...)
	allNames := make([]string, len(names), len(names)+len(cleaned))
	copy(allNames, names)

	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	register := func(name string) {
		if _, ok := known[name]; ok {
			return
		}
		known[name] = struct{}{}
		allNames = append(allNames, name)
	}

	var (
		pairs    []domain.Pair
		warnings []ParseWarning
	)
	if len(cleaned) >= 2 && len(cleaned)%2 == 0 {
		for i := 0; i < len(cleaned); i += 2 {
			register(cleaned[i])
			register(cleaned[i+1])
			pairs = append(pairs, domain.NewPair(cleaned[i], cleaned[i+1]))
		}
		return pairs, allNames, nil
	}

	for i, line := range cleaned {
		a, b, ok := splitPair(line)
		if !ok {
			warnings = append(warnings, ParseWarning{Line: i + 1, Raw: line})
			continue
		}
		register(a)
		register(b)
		pairs = append(pairs, domain.NewPair(a, b))
	}
	return pairs, allNames, warnings
}

func splitPair(line string) (string, string, bool) {
	tokens := separator.Split(line, -1)
	if len(tokens) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(tokens[0]), strings.TrimSpace(tokens[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
