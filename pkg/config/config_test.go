package config_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Bizops-api/pkg/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, "bizops", cfg.JWT.Issuer)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 180, cfg.Booking.HorizonDays)
	assert.Equal(t, time.Minute, cfg.Booking.CacheTTL)
	assert.Equal(t, "UTC", cfg.Booking.DefaultTimezone)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromViper_LeeValores(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "MEMORY")
	v.Set("DB_PORT", "6543")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("BOOKING_HORIZON_DAYS", "30")
	v.Set("BOOKING_CACHE_TTL", "90")
	v.Set("HTTP_SHUTDOWN_TIMEOUT", "3s")
	v.Set("BOOKING_DEFAULT_TIMEZONE", "America/Bogota")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30, cfg.Booking.HorizonDays)
	assert.Equal(t, 90*time.Second, cfg.Booking.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "America/Bogota", cfg.Booking.DefaultTimezone)
}

func TestFromViper_RechazaConfiguracionInvalida(t *testing.T) {
	cases := map[string]string{
		"DB_DRIVER":                "mysql",
		"BOOKING_HORIZON_DAYS":     "0",
		"BOOKING_DEFAULT_TIMEZONE": "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			v := viper.New()
			v.Set(key, value)
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "bizops", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/bizops?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", db.ConnectionString())
}
