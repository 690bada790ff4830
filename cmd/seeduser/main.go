// cmd/seeduser/main.go creates or updates a login in the configured store.
// Usage: go run ./cmd/seeduser -username jane -password secret -role Staff
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"biowearth/internal/config"
	"biowearth/internal/infra"
	"biowearth/internal/model"
	"biowearth/internal/repository"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

func main() {
	username := flag.String("username", model.DefaultAdminUsername, "login name")
	password := flag.String("password", model.DefaultAdminPassword, "plain-text password")
	name := flag.String("name", model.DefaultAdminName, "display name")
	role := flag.String("role", model.RoleAdmin, "Admin or Staff")
	flag.Parse()

	if *role != model.RoleAdmin && *role != model.RoleStaff {
		log.Fatal().Str("role", *role).Msg("role must be Admin or Staff")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.StoreDriver == config.DriverMemory {
		log.Fatal().Msg("STORE_DRIVER=memory does not persist; use postgres or mongo")
	}
	backend, err := infra.OpenBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open document store")
	}
	feed := store.NewFeed(backend, store.NewLocalBroadcaster())
	defer feed.Close()

	ctx := context.Background()
	repo := repository.New(feed)
	if err := repo.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to read users")
	}
	defer repo.Stop()

	fields := store.Fields{
		"name":     *name,
		"username": strings.TrimSpace(*username),
		"password": *password,
		"role":     *role,
	}
	action := "created"
	existing := ""
	for _, u := range repo.Snapshot().Users {
		if u.Username == fields.String("username") {
			existing = u.ID
			break
		}
	}
	if existing != "" {
		action = "updated"
		err = feed.Update(ctx, model.CollUsers, existing, fields)
	} else {
		existing, err = feed.Create(ctx, model.CollUsers, fields)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write user")
	}
	fmt.Printf("user %q %s (id %s, role %s)\n", fields.String("username"), action, existing, *role)
}
