package postgres

import (
	"testing"
	"time"

	"github.com/jhoicas/Bizops-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig_DesdeCamposDB(t *testing.T) {
	pc, err := PoolConfig(config.DBConfig{
		Host: "db", Port: 5433, User: "app", Password: "p@ss:word", DBName: "bizops", SSLMode: "disable",
		MaxConns: 10, MinConns: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "bizops", pc.ConnConfig.Database)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 5*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "bizops", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := PoolConfig(config.DBConfig{
		DatabaseURL: "postgres://svc@pg.internal:5432/agenda?sslmode=disable&application_name=worker",
		Host:        "ignorado", Port: 1, MaxConns: 3, MinConns: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "pg.internal", pc.ConnConfig.Host)
	assert.Equal(t, "agenda", pc.ConnConfig.Database)
	assert.Equal(t, "worker", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(3), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns, "min no supera max")
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://app@db:puerto/x"})
	assert.Error(t, err)
}
