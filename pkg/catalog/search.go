package catalog

import (
	"strings"

	"gamestore/pkg/models"
)

// SearchKind selects which matcher a search expression uses.
type SearchKind string

const (
	// KindTags matches any entry where at least one supplied tag equals
	// a genre tag, the rating, or the platform (case-sensitive).
	KindTags SearchKind = "tags"

	// KindFreeText matches any entry whose name or description contains
	// the query as a case-insensitive substring.
	KindFreeText SearchKind = "free-text"
)

// ParseQuery splits a raw search expression into its kind and query.
// Expressions look like "tags=a,b" or "free-text=minecraft clone". An
// unrecognized prefix is reported via ok=false; callers return an
// empty result for those rather than an error.
func ParseQuery(term string) (kind SearchKind, query string, ok bool) {
	if rest, found := strings.CutPrefix(term, string(KindTags)+"="); found {
		return KindTags, rest, true
	}
	if rest, found := strings.CutPrefix(term, string(KindFreeText)+"="); found {
		return KindFreeText, rest, true
	}
	return "", "", false
}

// SearchPublic runs a search and projects the matches for anonymous
// callers: no URL, no encoded source key, no package-manager flag.
func (s *Store) SearchPublic(kind SearchKind, query string) ([]models.PublicGame, error) {
	matches, err := s.search(kind, query)
	if err != nil {
		return nil, err
	}
	results := make([]models.PublicGame, 0, len(matches))
	for i := range matches {
		results = append(results, publicView(&matches[i]))
	}
	return results, nil
}

// SearchInternal runs a search for the admin removal flow. The
// projection retains the encoded source key as a deletion handle but
// still omits the URL and the package-manager flag.
func (s *Store) SearchInternal(kind SearchKind, query string) ([]models.InternalGame, error) {
	matches, err := s.search(kind, query)
	if err != nil {
		return nil, err
	}
	results := make([]models.InternalGame, 0, len(matches))
	for i := range matches {
		results = append(results, models.InternalGame{
			PublicGame:    publicView(&matches[i]),
			SourceEncoded: matches[i].SourceEncoded,
		})
	}
	return results, nil
}

// ListPublic returns the full catalog in the public projection.
func (s *Store) ListPublic() ([]models.PublicGame, error) {
	games, err := s.List()
	if err != nil {
		return nil, err
	}
	results := make([]models.PublicGame, 0, len(games))
	for i := range games {
		results = append(results, publicView(&games[i]))
	}
	return results, nil
}

// GetPublic returns a single entry in the public projection.
func (s *Store) GetPublic(name string) (*models.PublicGame, error) {
	game, err := s.GetByName(name)
	if err != nil {
		return nil, err
	}
	view := publicView(game)
	return &view, nil
}

// search pulls every row and filters in memory. The catalog is small
// enough that a full scan per query mirrors how it has always behaved.
func (s *Store) search(kind SearchKind, query string) ([]models.Game, error) {
	games, err := s.List()
	if err != nil {
		return nil, err
	}

	matches := []models.Game{}
	switch kind {
	case KindTags:
		tags := strings.Split(query, ",")
		for i := range games {
			if matchesAnyTag(&games[i], tags) {
				matches = append(matches, games[i])
			}
		}
	case KindFreeText:
		needle := strings.ToLower(query)
		for i := range games {
			if strings.Contains(strings.ToLower(games[i].Name), needle) ||
				strings.Contains(strings.ToLower(games[i].Description), needle) {
				matches = append(matches, games[i])
			}
		}
	}
	return matches, nil
}

// matchesAnyTag reports whether at least one tag equals a genre, the
// rating, or the platform. First hit wins; comparison is exact.
func matchesAnyTag(game *models.Game, tags []string) bool {
	for _, tag := range tags {
		if tag == game.Rating || tag == game.Platform {
			return true
		}
		for _, genre := range game.Genres {
			if tag == genre {
				return true
			}
		}
	}
	return false
}

func publicView(game *models.Game) models.PublicGame {
	return models.PublicGame{
		Name:           game.Name,
		Downloads:      game.Downloads,
		Genres:         game.Genres,
		ScreenshotsURL: game.ScreenshotsURL,
		Description:    game.Description,
		Rating:         game.Rating,
		Platform:       game.Platform,
		AddedAt:        game.AddedAt,
	}
}
