package storage

import (
	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

func (s *Storage) GamesRating(guildID string) (string, error) {
	var cfg domain.GamesConfig
	if _, err := s.ds.Get(guildKey(guildID, "games"), &cfg); err != nil {
		return "", err
	}
	return cfg.Rating, nil
}

func (s *Storage) SetGamesRating(guildID, rating string) error {
	return datastore.Update(s.ds, guildKey(guildID, "games"), func(cur domain.GamesConfig, _ bool) (domain.GamesConfig, error) {
		cur.Rating = rating
		return cur, nil
	})
}
