package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"biowearth/internal/model"
	"biowearth/internal/repository"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

// Bootstrapper seeds the built-in admin user and the default picklists whenever
// the users or settings collection is empty.
type Bootstrapper struct {
	writer store.Adapter
	reader Reader
	mu     sync.Mutex
}

func NewBootstrapper(writer store.Adapter, reader Reader) *Bootstrapper {
	return &Bootstrapper{writer: writer, reader: reader}
}

// Run seeds whatever is missing. It is safe to call repeatedly.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.reader.Snapshot()
	if len(snap.Users) == 0 {
		_, err := b.writer.Create(ctx, model.CollUsers, store.Fields{
			"name":     model.DefaultAdminName,
			"username": model.DefaultAdminUsername,
			"password": model.DefaultAdminPassword,
			"role":     model.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		log.Info().Str("username", model.DefaultAdminUsername).Msg("bootstrap: admin user created")
	}

	if len(snap.Settings) == 0 {
		defaults := model.DefaultSettings()
		keys := make([]string, 0, len(defaults))
		for k := range defaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := b.writer.SetKeyed(ctx, model.CollSettings, k, settingBody(defaults[k])); err != nil {
				return fmt.Errorf("bootstrap setting %s: %w", k, err)
			}
		}
		log.Info().Int("keys", len(keys)).Msg("bootstrap: default settings seeded")
	}
	return nil
}

// Watch re-runs the seeding whenever users or settings become empty. Observers
// fire on the delivering goroutine, so the writes happen on a new one.
func (b *Bootstrapper) Watch(repo *repository.Repository) {
	trigger := func(snap *repository.Snapshot) {
		if len(snap.Users) > 0 && len(snap.Settings) > 0 {
			return
		}
		go func() {
			if err := b.Run(context.Background()); err != nil {
				log.Error().Err(err).Msg("bootstrap: reseed failed")
			}
		}()
	}
	repo.Observe(model.CollUsers, trigger)
	repo.Observe(model.CollSettings, trigger)
}
