package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"gamestore/pkg/models"
)

// LoadSeed reads a seed file mapping entry names to catalog records,
// the same shape the store serves over the wire.
func LoadSeed(path string) ([]models.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed map[string]models.Game
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	games := make([]models.Game, 0, len(seed))
	for name, game := range seed {
		if game.Name == "" {
			game.Name = name
		}
		if game.SourceEncoded == "" {
			game.SourceEncoded = EncodeSource(game.URL)
		}
		if game.Downloads < 1 {
			game.Downloads = 1
		}
		games = append(games, game)
	}
	return games, nil
}

// SeedIfEmpty inserts the given entries when the catalog has no rows
// yet. A populated store is left untouched.
func (s *Store) SeedIfEmpty(games []models.Game) error {
	count, err := s.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range games {
		if err := s.Insert(&games[i]); err != nil {
			return fmt.Errorf("failed to seed entry %q: %w", games[i].Name, err)
		}
	}
	return nil
}
