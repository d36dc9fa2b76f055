package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ghaggin/homesite/internal/auth"
	"github.com/ghaggin/homesite/internal/config"
	"github.com/ghaggin/homesite/internal/content"
	"github.com/ghaggin/homesite/internal/middleware"
	"github.com/ghaggin/homesite/internal/model"
	"github.com/ghaggin/homesite/internal/repository"
	"github.com/ghaggin/homesite/internal/site"
	"github.com/ghaggin/homesite/internal/template"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	var configPath = flag.String("config", "./config/config.yaml", "path to the config file")
	var addUser = flag.String("add-user", "", "add a user to the user repo and exit")
	flag.Parse()

	if *addUser != "" {
		if err := runAddUser(*configPath, *addUser); err != nil {
			fmt.Fprintf(os.Stderr, "add-user: %v\n", err)
			os.Exit(1)
		}
		return
	}

	newConfig := func() (*config.Config, error) {
		return config.New(*configPath)
	}

	app := fx.New(
		fx.Provide(
			zap.NewDevelopment,
			newConfig,
			middleware.NewSessionManager,
			repository.NewJSON,
			auth.New,
			content.New,
			template.New,
			site.New,
		),
		fx.Invoke(site.RegisterHooks),
	)

	app.Run()
}

// runAddUser hashes a password read from stdin and appends the user
// to the json repo. Runs outside the fx app so it works without
// HOMESITE_SECRET being set.
func runAddUser(configPath, name string) error {
	cfg, err := config.New(configPath)
	if err != nil {
		return err
	}

	repo, err := repository.NewJSON(repository.JSONParams{
		Config: cfg,
		Log:    zap.NewNop(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "password for %v: ", name)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return fmt.Errorf("reading password: %w", scanner.Err())
	}
	password := strings.TrimSpace(scanner.Text())
	if password == "" {
		return fmt.Errorf("empty password")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	ctx := context.Background()
	err = repo.AddUser(ctx, &model.User{
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	return repo.Save(ctx)
}
