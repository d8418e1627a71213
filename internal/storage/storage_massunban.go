package storage

import (
	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

const unbanRunLimit = 10

// AppendUnbanRun records a mass unban execution, keeping the newest
// unbanRunLimit entries per guild.
func (s *Storage) AppendUnbanRun(guildID string, run domain.UnbanRun) error {
	return datastore.Update(s.ds, guildKey(guildID, "unbanruns"), func(cur []domain.UnbanRun, _ bool) ([]domain.UnbanRun, error) {
		cur = append(cur, run)
		if len(cur) > unbanRunLimit {
			cur = cur[len(cur)-unbanRunLimit:]
		}
		return cur, nil
	})
}

func (s *Storage) UnbanRuns(guildID string) ([]domain.UnbanRun, error) {
	var runs []domain.UnbanRun
	if _, err := s.ds.Get(guildKey(guildID, "unbanruns"), &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
