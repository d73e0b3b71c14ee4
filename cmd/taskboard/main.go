package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/facildate/taskboard/internal/api"
	"github.com/facildate/taskboard/internal/app"
	"github.com/facildate/taskboard/internal/auth"
	"github.com/facildate/taskboard/internal/draft"
	"github.com/facildate/taskboard/internal/i18n"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/session"
	"github.com/facildate/taskboard/internal/storage"
	appsync "github.com/facildate/taskboard/internal/sync"
	"github.com/facildate/taskboard/internal/task"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if os.Getenv("TASKBOARD_DEBUG") != "" {
		f, err := tea.LogToFile("taskboard-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	}

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Prefer the OS keyring for session state; fall back to in-memory
	// storage (no persistence) when no keyring backend is available.
	var backend storage.Backend
	backend, err = storage.OpenKeyring()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskboard: keyring unavailable, session will not persist: %v\n", err)
		backend = storage.NewMemory()
	}

	sess := session.NewStore(backend)
	lang := i18n.NewLanguageStore(backend)

	drafts, err := draft.NewStore(draft.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening drafts store: %w", err)
	}
	defer drafts.Close()

	client, err := api.NewClient(cfg.API.BaseURL, sess.Token, cfg.API.TrustedOrigins...)
	if err != nil {
		return fmt.Errorf("configuring API client: %w", err)
	}

	authSvc := auth.NewService(client, sess)
	taskSvc := task.NewService(client, sess)

	poller := appsync.New(
		taskSvc,
		time.Duration(cfg.API.RefreshIntervalSec)*time.Second,
	)
	defer poller.Stop()

	p := tea.NewProgram(
		app.New(taskSvc, authSvc, sess, lang, drafts, poller),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}
