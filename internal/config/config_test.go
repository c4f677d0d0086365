package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Slideshow.CenteredX)
	assert.True(t, cfg.Slideshow.CenteredY)
	assert.Equal(t, 5*time.Second, cfg.Slideshow.Duration.Duration)
	assert.Equal(t, time.Duration(0), cfg.Slideshow.Fade.Duration)

	assert.Equal(t, 3, cfg.Carousel.Visible)
	assert.Equal(t, 1, cfg.Carousel.Scroll)
	assert.True(t, cfg.Carousel.Circular)
	assert.Equal(t, 15*time.Second, cfg.Carousel.Auto.Duration)
	assert.Equal(t, time.Second, cfg.Carousel.Speed.Duration)
	assert.True(t, cfg.Carousel.PauseOnHover)
	assert.True(t, cfg.Carousel.StopOnClick)
	assert.Equal(t, 0, cfg.Carousel.Start)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[slideshow]
images = ["a.png", "b.jpg"]
fade = "750ms"

[carousel]
visible = 1
circular = false
auto = ""

[[carousel.items]]
id = "one"
title = "First"
src = "one.png"
variant = "mobile"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigServiceAt(path, nil).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.jpg"}, cfg.Slideshow.Images)
	assert.Equal(t, 750*time.Millisecond, cfg.Slideshow.Fade.Duration)
	// untouched keys keep their defaults
	assert.Equal(t, 5*time.Second, cfg.Slideshow.Duration.Duration)
	assert.True(t, cfg.Slideshow.CenteredY)

	assert.Equal(t, 1, cfg.Carousel.Visible)
	assert.False(t, cfg.Carousel.Circular)
	assert.Zero(t, cfg.Carousel.Auto.Duration, "empty auto disables auto-advance")
	require.Len(t, cfg.Carousel.Items, 1)
	assert.Equal(t, "mobile", cfg.Carousel.Items[0].Variant)
}

func TestLoadFromPathRejectsInvalidOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[carousel]\nvisible = 0\n"), 0644))

	_, err := NewConfigServiceAt(path, nil).LoadFromPath(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestLoadFromPathRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[slideshow]\nduration = \"soon\"\n"), 0644))

	_, err := NewConfigServiceAt(path, nil).LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.toml")
	cfg, err := NewConfigServiceAt(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadKeepsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path, nil)

	cfg := DefaultConfig()
	cfg.MediaDir = "/srv/media"
	cfg.Carousel.Speed = D(250 * time.Millisecond)
	cfg.Carousel.Items = []ItemSettings{{ID: "x", Title: "X"}}
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/media", loaded.MediaDir)
	assert.Equal(t, 250*time.Millisecond, loaded.Carousel.Speed.Duration)
	assert.Equal(t, cfg.Carousel.Items, loaded.Carousel.Items)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Slideshow.Duration = D(0) }},
		{"negative fade", func(c *Config) { c.Slideshow.Fade = D(-time.Second) }},
		{"zero scroll", func(c *Config) { c.Carousel.Scroll = 0 }},
		{"negative start", func(c *Config) { c.Carousel.Start = -1 }},
		{"unknown easing", func(c *Config) { c.Carousel.Easing = "bounce" }},
		{"tiny item", func(c *Config) { c.Carousel.ItemWidth = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidOptions)
		})
	}
}
