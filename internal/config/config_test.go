package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollpager/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "none.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissing(t *testing.T) {
	svc := NewConfigService("")
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "none.toml"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAndLoadKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Source = "/tmp/records.txt"
	cfg.PageSize = 10
	cfg.StartPage = 4
	cfg.Scroll.LoadBuffer = 5
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[scroll]")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = 7\n[scroll]\ndebounce_ms = 50\n"), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, 1, cfg.StartPage)
	assert.Equal(t, 3, cfg.Scroll.LoadBuffer)
	assert.Equal(t, 50*time.Millisecond, cfg.Scroll.Debounce())
	assert.True(t, cfg.Scroll.Enable)
}

func TestInvalidValuesRejected(t *testing.T) {
	tests := map[string]string{
		"page size":   "page_size = 0\n",
		"start page":  "start_page = 0\n",
		"load buffer": "[scroll]\nload_buffer = 0\n",
		"debounce":    "[scroll]\ndebounce_ms = -1\n",
		"syntax":      "page_size = \n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewConfigService(path).Load()
			require.Error(t, err)
		})
	}
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan eventbus.ConfigLoadedEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.ConfigLoadedEvent)
	})

	svc := NewConfigServiceWithBus(filepath.Join(t.TempDir(), "config.toml"), bus)
	_, err := svc.Load()
	require.NoError(t, err)

	select {
	case ev := <-got:
		assert.Equal(t, 25, ev.PageSize)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoaded not published")
	}
}
