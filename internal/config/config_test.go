package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig()
		assert.NoError(t, err)
		assert.Equal(t, "localhost:8000", cfg.ServerAddr, "expected default server address")
		assert.NotEmpty(t, cfg.DatabaseDSN, "expected default database DSN")
		assert.Empty(t, cfg.AllowedOrigins, "expected no allowed origins by default")
	})

	t.Run("reads from environment", func(t *testing.T) {
		t.Setenv("CHATTY_SERVER_ADDR", "0.0.0.0:9000")
		t.Setenv("CHATTY_DATABASE_DSN", "host=db user=chatty dbname=chatty sslmode=disable")
		t.Setenv("CHATTY_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

		cfg, err := NewConfig()
		assert.NoError(t, err)
		assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddr)
		assert.Equal(t, "host=db user=chatty dbname=chatty sslmode=disable", cfg.DatabaseDSN)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	})
}

func TestConfig_Validate(t *testing.T) {
	tcases := []struct {
		name string
		cfg  Config
		err  bool
	}{
		{
			name: "valid config",
			cfg: Config{
				ServerAddr:  "localhost:8000",
				DatabaseDSN: "host=localhost user=postgres dbname=postgres sslmode=disable",
			},
			err: false,
		},
		{
			name: "empty address",
			cfg: Config{
				DatabaseDSN: "host=localhost user=postgres dbname=postgres sslmode=disable",
			},
			err: true,
		},
		{
			name: "empty DSN",
			cfg: Config{
				ServerAddr: "localhost:8000",
			},
			err: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.err {
				assert.Error(t, err, "expected error for config: %s", tc.name)
			} else {
				assert.NoError(t, err, "expected no error for config: %s", tc.name)
			}
		})
	}
}
