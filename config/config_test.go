package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_覆盖默认值(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yml")
	content := `
server:
  addr: ":9000"
redis:
  enabled: true
  addr: "redis:6379"
game:
  idle_timeout: 90s
  max_ai_steps: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := read(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 90*time.Second, cfg.Game.IdleTimeout)
	assert.Equal(t, 20, cfg.Game.MaxAISteps)
	// 未填写的保留默认
	assert.Equal(t, 30*time.Second, cfg.Game.SweepInterval)
	assert.Equal(t, "access-secret", cfg.JWT.AccessSecret)
}

func TestRead_文件不存在(t *testing.T) {
	_, err := read(filepath.Join(t.TempDir(), "missing.yml"), nil)
	assert.Error(t, err)
}

func TestFindConfigUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, defaultConfigRelPath), []byte("server: {}\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, filepath.Join(root, defaultConfigRelPath), findConfigUpward(nested))
}

func TestGet_返回拷贝(t *testing.T) {
	old := Get()
	t.Cleanup(func() { Set(old) })

	c := Get()
	c.Server.Addr = ":1"
	assert.NotEqual(t, ":1", Get().Server.Addr)

	Set(c)
	assert.Equal(t, ":1", Get().Server.Addr)
}

func TestLoad_热更新时并发读取(t *testing.T) {
	old := Get()
	t.Cleanup(func() { Set(old) })

	path := filepath.Join(t.TempDir(), "conf.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644))
	load(path)
	assert.Equal(t, ":9000", Get().Server.Addr)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = Get().Server.Addr
			}
		}
	}()

	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9100\"\n"), 0o644))
	assert.Eventually(t, func() bool { return Get().Server.Addr == ":9100" }, 3*time.Second, 20*time.Millisecond)
	close(stop)
	wg.Wait()
}
