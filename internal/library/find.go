package library

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// ErrGameNotFound is returned by Find when no game matches the query
var ErrGameNotFound = errors.New("game not found")

const (
	suggestionThreshold = 0.7
	maxSuggestions      = 3
)

// Find returns the game whose name, or failing that whose directory name,
// matches query ignoring case. Error placeholders can be found too.
func Find(games []*Game, query string) (*Game, error) {
	query = strings.TrimSpace(query)
	key := foldKey(query)

	for _, g := range games {
		if foldKey(g.Name) == key {
			return g, nil
		}
	}
	for _, g := range games {
		if foldKey(g.DirName()) == key {
			return g, nil
		}
	}

	if suggestions := Suggest(games, query); len(suggestions) > 0 {
		return nil, fmt.Errorf("%w: %q (did you mean %s?)", ErrGameNotFound, query, strings.Join(suggestions, ", "))
	}
	return nil, fmt.Errorf("%w: %q", ErrGameNotFound, query)
}

// Suggest returns up to three game names close to query, best first
func Suggest(games []*Game, query string) []string {
	type candidate struct {
		name  string
		score float32
	}

	key := foldKey(query)
	var candidates []candidate
	for _, g := range games {
		score := edlib.JaroWinklerSimilarity(key, foldKey(g.Name))
		if s := edlib.JaroWinklerSimilarity(key, foldKey(g.DirName())); s > score {
			score = s
		}
		if score >= suggestionThreshold {
			candidates = append(candidates, candidate{name: g.Name, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var names []string
	for _, c := range candidates {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, fmt.Sprintf("%q", c.name))
	}
	return names
}
