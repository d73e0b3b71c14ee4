package model_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facildate/taskboard/internal/model"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 120, cfg.API.RefreshIntervalSec)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.Empty(t, cfg.API.TrustedOrigins)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &model.AppConfig{
		API: model.APIConfig{
			BaseURL:            "https://tasks.example.com",
			TrustedOrigins:     []string{"https://cdn.example.com"},
			RefreshIntervalSec: 30,
		},
		Display: model.DisplayConfig{Theme: "dark"},
	}
	require.NoError(t, model.SaveConfig(path, want))

	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want.API.BaseURL, got.API.BaseURL)
	assert.Equal(t, want.API.TrustedOrigins, got.API.TrustedOrigins)
	assert.Equal(t, 30, got.API.RefreshIntervalSec)
	assert.Equal(t, "dark", got.Display.Theme)
}

func TestFilterValid(t *testing.T) {
	assert.True(t, model.FilterAll.Valid())
	assert.True(t, model.FilterTodo.Valid())
	assert.True(t, model.FilterDone.Valid())
	assert.False(t, model.Filter("bogus").Valid())
}

func TestUserDisplayName(t *testing.T) {
	u := model.User{Username: "diego"}
	assert.Equal(t, "diego", u.DisplayName())

	u.FirstName = "Diego"
	u.LastName = "Rivera"
	assert.Equal(t, "Diego Rivera", u.DisplayName())
}
