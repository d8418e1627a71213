package storage

import (
	"errors"
	"time"

	"seina-bot/datastore"
	"seina-bot/internal/domain"
)

var ErrNoPersonalChannel = errors.New("no personal channel assigned")

func (s *Storage) PersonalChannels(guildID string) (domain.PersonalChannelsConfig, error) {
	var cfg domain.PersonalChannelsConfig
	_, err := s.ds.Get(guildKey(guildID, "personalchannels"), &cfg)
	return cfg, err
}

func (s *Storage) AssignPersonalChannel(guildID, userID, channelID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "personalchannels"), func(cur domain.PersonalChannelsConfig, _ bool) (domain.PersonalChannelsConfig, error) {
		if cur.Channels == nil {
			cur.Channels = make(map[string]domain.PersonalChannel)
		}
		cur.Channels[userID] = domain.PersonalChannel{
			ChannelID: channelID,
			Assigned:  time.Now().UTC(),
		}
		return cur, nil
	})
}

func (s *Storage) UnassignPersonalChannel(guildID, userID string) error {
	return datastore.Update(s.ds, guildKey(guildID, "personalchannels"), func(cur domain.PersonalChannelsConfig, _ bool) (domain.PersonalChannelsConfig, error) {
		delete(cur.Channels, userID)
		return cur, nil
	})
}

// PersonalChannelFor returns the channel owned by userID.
func (s *Storage) PersonalChannelFor(guildID, userID string) (domain.PersonalChannel, error) {
	cfg, err := s.PersonalChannels(guildID)
	if err != nil {
		return domain.PersonalChannel{}, err
	}
	pc, ok := cfg.Channels[userID]
	if !ok {
		return domain.PersonalChannel{}, ErrNoPersonalChannel
	}
	return pc, nil
}

// PersonalChannelOwner finds the user owning channelID, if any.
func (s *Storage) PersonalChannelOwner(guildID, channelID string) (string, bool, error) {
	cfg, err := s.PersonalChannels(guildID)
	if err != nil {
		return "", false, err
	}
	for userID, pc := range cfg.Channels {
		if pc.ChannelID == channelID {
			return userID, true, nil
		}
	}
	return "", false, nil
}

func (s *Storage) AddPersonalFriend(guildID, userID, friendID string) error {
	return updatePersonalChannel(s, guildID, userID, func(pc domain.PersonalChannel) domain.PersonalChannel {
		pc.Friends = appendUnique(pc.Friends, friendID)
		return pc
	})
}

func (s *Storage) RemovePersonalFriend(guildID, userID, friendID string) error {
	return updatePersonalChannel(s, guildID, userID, func(pc domain.PersonalChannel) domain.PersonalChannel {
		pc.Friends = removeString(pc.Friends, friendID)
		return pc
	})
}

func updatePersonalChannel(s *Storage, guildID, userID string, fn func(domain.PersonalChannel) domain.PersonalChannel) error {
	return datastore.Update(s.ds, guildKey(guildID, "personalchannels"), func(cur domain.PersonalChannelsConfig, _ bool) (domain.PersonalChannelsConfig, error) {
		pc, ok := cur.Channels[userID]
		if !ok {
			return cur, ErrNoPersonalChannel
		}
		cur.Channels[userID] = fn(pc)
		return cur, nil
	})
}
