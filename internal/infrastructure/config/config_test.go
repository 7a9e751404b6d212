package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  mode: test
database:
  driver: sqlite
  sqlite_path: test.db
jwt:
  secret: test-secret
cart:
  lock_backend: redis
`

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(content), 0o644))
	t.Chdir(dir)
}

func TestLoad(t *testing.T) {
	t.Run("读取文件并填充默认值", func(t *testing.T) {
		writeConfig(t, testYAML)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "test.db?_foreign_keys=on", cfg.Database.DSN())
		assert.Equal(t, LockBackendRedis, cfg.Cart.LockBackend)
		assert.Equal(t, 5*time.Minute, cfg.Cache.OrderTTL)
		assert.Equal(t, "moongift.events", cfg.MQ.Exchange)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		writeConfig(t, testYAML)
		t.Setenv("MOONGIFT_SERVER_PORT", "7070")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("非法锁类型校验失败", func(t *testing.T) {
		writeConfig(t, testYAML)
		t.Setenv("MOONGIFT_CART_LOCK_BACKEND", "etcd")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:    DriverMySQL,
		User:      "root",
		Password:  "pw",
		Host:      "127.0.0.1",
		Port:      3306,
		DBName:    "moongift",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Tashkent",
	}
	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/moongift?charset=utf8mb4&parseTime=true&loc=Asia%2FTashkent", d.DSN())
}
