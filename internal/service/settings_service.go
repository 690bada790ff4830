package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"biowearth/internal/dto"
	"biowearth/internal/model"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

var ErrUnknownSetting = errors.New("unknown setting key")

// SettingsService edits the configurable picklists. Each list is stored as one
// keyed document {"list": [...]}.
type SettingsService interface {
	All() model.Settings
	Get(key string) (dto.SettingResponse, error)
	AddItem(ctx context.Context, key, item string) (dto.SettingResponse, error)
	RemoveItem(ctx context.Context, key, item string) (dto.SettingResponse, error)
}

type settingsService struct {
	writer store.Adapter
	reader Reader
}

func NewSettingsService(writer store.Adapter, reader Reader) SettingsService {
	return &settingsService{writer: writer, reader: reader}
}

func knownSetting(key string) bool {
	_, ok := model.DefaultSettings()[key]
	return ok
}

func (s *settingsService) All() model.Settings {
	return s.reader.Snapshot().Settings
}

func (s *settingsService) Get(key string) (dto.SettingResponse, error) {
	if !knownSetting(key) {
		return dto.SettingResponse{}, ErrUnknownSetting
	}
	list := s.reader.Snapshot().Settings.List(key)
	if list == nil {
		list = []string{}
	}
	return dto.SettingResponse{Key: key, List: list}, nil
}

// AddItem appends item to the list. Empty and duplicate items are ignored.
func (s *settingsService) AddItem(ctx context.Context, key, item string) (dto.SettingResponse, error) {
	current, err := s.Get(key)
	if err != nil {
		return current, err
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return current, nil
	}
	for _, v := range current.List {
		if v == item {
			return current, nil
		}
	}
	list := append(append([]string{}, current.List...), item)
	return s.write(ctx, key, list)
}

// RemoveItem drops every occurrence of item. Removing an absent item is a no-op.
func (s *settingsService) RemoveItem(ctx context.Context, key, item string) (dto.SettingResponse, error) {
	current, err := s.Get(key)
	if err != nil {
		return current, err
	}
	list := make([]string, 0, len(current.List))
	for _, v := range current.List {
		if v != item {
			list = append(list, v)
		}
	}
	if len(list) == len(current.List) {
		return current, nil
	}
	return s.write(ctx, key, list)
}

func (s *settingsService) write(ctx context.Context, key string, list []string) (dto.SettingResponse, error) {
	if err := s.writer.SetKeyed(ctx, model.CollSettings, key, settingBody(list)); err != nil {
		return dto.SettingResponse{}, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	log.Info().Str("key", key).Int("items", len(list)).Msg("service: setting updated")
	return dto.SettingResponse{Key: key, List: list}, nil
}

func settingBody(list []string) store.Fields {
	items := make([]any, len(list))
	for i, v := range list {
		items[i] = v
	}
	return store.Fields{"list": items}
}
