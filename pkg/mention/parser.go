// Package mention resolves @name tokens in chat text against a sit-down's
// roster of members, including the @all broadcast token and owner-based
// disambiguation for members that share a display name.
package mention

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Persona is one addressable roster entry.
type Persona struct {
	Id      uuid.UUID
	Name    string
	OwnerId uuid.UUID
}

// TooManyMentionsError is returned when @all would summon more members than
// the configured cap allows.
type TooManyMentionsError struct {
	Cap        int
	RosterSize int
}

func (e *TooManyMentionsError) Error() string {
	return fmt.Sprintf("You can only summon %d at once. You've got %d at the table.", e.Cap, e.RosterSize)
}

// boundary characters accepted after a matched name, besides whitespace
// and end of string.
const boundaryChars = ",.:;!?"

// candidate is one textual form one or more personas can be addressed by.
// Two same-named personas share the plain form, so a match on it reports
// both of them.
type candidate struct {
	text       string // lowercased, without the leading @
	personaIds []uuid.UUID
}

// OwnerLabels computes, for every persona whose display name collides with
// another persona's name in the roster, a map from persona id to its owner's
// display name. Personas with unique names are absent from the result. This
// is a pure function of the roster and owner list.
func OwnerLabels(roster []Persona, ownerNames map[uuid.UUID]string) map[uuid.UUID]string {
	counts := make(map[string]int)
	for _, p := range roster {
		counts[strings.ToLower(p.Name)]++
	}

	labels := make(map[uuid.UUID]string)
	for _, p := range roster {
		if counts[strings.ToLower(p.Name)] > 1 {
			labels[p.Id] = ownerNames[p.OwnerId]
		}
	}
	return labels
}

// ExtractMentions scans text for @name tokens and resolves them to persona
// ids. @all (case-insensitive, word-bounded) short-circuits to the whole
// roster; a roster larger than maxAll is rejected rather than truncated.
//
// Candidate forms per persona, tried longest-first so the most specific
// name wins at any position:
//  1. "@Name (Don Owner's)" for personas with a colliding name
//  2. "@Name"
//  3. either of the above with a leading "The " stripped from the name
//
// A match counts only at a trailing word boundary, and claimed character
// ranges are never re-claimed by a later, shorter candidate.
func ExtractMentions(text string, roster []Persona, ownerLabels map[uuid.UUID]string, maxAll int) ([]uuid.UUID, error) {
	if hasAllToken(text) {
		if len(roster) > maxAll {
			return nil, &TooManyMentionsError{Cap: maxAll, RosterSize: len(roster)}
		}
		ids := make([]uuid.UUID, len(roster))
		for i, p := range roster {
			ids[i] = p.Id
		}
		return ids, nil
	}

	candidates := buildCandidates(roster, ownerLabels)
	lower := strings.ToLower(text)

	var claimed [][2]int
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID

	for _, c := range candidates {
		needle := "@" + c.text
		from := 0
		for {
			idx := strings.Index(lower[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)
			from = start + 1

			if !trailingBoundary(lower, end) {
				continue
			}
			if overlaps(claimed, start, end) {
				continue
			}
			claimed = append(claimed, [2]int{start, end})
			for _, id := range c.personaIds {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids, nil
}

func buildCandidates(roster []Persona, ownerLabels map[uuid.UUID]string) []candidate {
	byText := make(map[string]*candidate)
	var order []string
	add := func(name string, id uuid.UUID) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return
		}
		c, ok := byText[name]
		if !ok {
			c = &candidate{text: name}
			byText[name] = c
			order = append(order, name)
		}
		c.personaIds = append(c.personaIds, id)
	}

	for _, p := range roster {
		names := []string{p.Name}
		if stripped := stripLeadingThe(p.Name); stripped != "" {
			names = append(names, stripped)
		}
		for _, n := range names {
			if owner, ok := ownerLabels[p.Id]; ok {
				add(fmt.Sprintf("%s (don %s's)", n, owner), p.Id)
			}
			add(n, p.Id)
		}
	}

	candidates := make([]candidate, 0, len(order))
	for _, text := range order {
		candidates = append(candidates, *byText[text])
	}

	// Longest first guarantees the greedy, most specific match. Ties keep
	// roster order for determinism.
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].text) > len(candidates[j].text)
	})
	return candidates
}

func stripLeadingThe(name string) string {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "the ") && len(name) > 4 {
		return name[4:]
	}
	return ""
}

func hasAllToken(text string) bool {
	lower := strings.ToLower(text)
	from := 0
	for {
		idx := strings.Index(lower[from:], "@all")
		if idx < 0 {
			return false
		}
		end := from + idx + len("@all")
		from = from + idx + 1
		if trailingBoundary(lower, end) {
			return true
		}
	}
}

func trailingBoundary(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	next := rune(text[end])
	return unicode.IsSpace(next) || strings.ContainsRune(boundaryChars, next)
}

func overlaps(claimed [][2]int, start, end int) bool {
	for _, r := range claimed {
		if start < r[1] && end > r[0] {
			return true
		}
	}
	return false
}
