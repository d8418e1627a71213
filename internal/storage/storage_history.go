package storage

import (
	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

// AppendCommandHistory records a command execution, keeping the newest
// historyLimit entries per guild.
func (s *Storage) AppendCommandHistory(guildID string, h domain.CommandHistory) error {
	return datastore.Update(s.ds, guildKey(guildID, "history"), func(cur domain.HistoryRecord, _ bool) (domain.HistoryRecord, error) {
		cur.Entries = append(cur.Entries, h)
		if len(cur.Entries) > historyLimit {
			cur.Entries = cur.Entries[len(cur.Entries)-historyLimit:]
		}
		return cur, nil
	})
}

func (s *Storage) CommandHistory(guildID string) ([]domain.CommandHistory, error) {
	var rec domain.HistoryRecord
	if _, err := s.ds.Get(guildKey(guildID, "history"), &rec); err != nil {
		return nil, err
	}
	return rec.Entries, nil
}
