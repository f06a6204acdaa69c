package catalog

import "gamestore/pkg/models"

// TagFacets derives the de-duplicated union of genre tags, ratings and
// platforms across the whole catalog, each ordered by first
// appearance. Computed fresh on every call; nothing is cached.
func (s *Store) TagFacets() (*models.TagFacets, error) {
	games, err := s.List()
	if err != nil {
		return nil, err
	}

	facets := &models.TagFacets{
		Genres:    []string{},
		Ratings:   []string{},
		Platforms: []string{},
	}
	seenGenres := map[string]bool{}
	seenRatings := map[string]bool{}
	seenPlatforms := map[string]bool{}

	for i := range games {
		for _, genre := range games[i].Genres {
			if !seenGenres[genre] {
				seenGenres[genre] = true
				facets.Genres = append(facets.Genres, genre)
			}
		}
		if rating := games[i].Rating; rating != "" && !seenRatings[rating] {
			seenRatings[rating] = true
			facets.Ratings = append(facets.Ratings, rating)
		}
		if platform := games[i].Platform; platform != "" && !seenPlatforms[platform] {
			seenPlatforms[platform] = true
			facets.Platforms = append(facets.Platforms, platform)
		}
	}

	return facets, nil
}
