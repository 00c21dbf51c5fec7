package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSlots_ListaFranjas(t *testing.T) {
	out, err := run(t, "slots", "--start", "09:00", "--end", "10:00", "--duration", "30")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "09:00")
	assert.Contains(t, lines[1], "9:00 AM - 9:30 AM")
	assert.Contains(t, lines[2], "09:30")
}

func TestSlots_ConFechaConvierteAUTC(t *testing.T) {
	out, err := run(t, "slots", "--start", "09:00", "--end", "09:30", "--date", "2025-03-10", "--tz", "America/New_York")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-10T13:00:00Z")
	assert.Contains(t, out, "2025-03-10T13:30:00Z")
}

func TestSlots_HoraEnSaltoDeHorarioFalla(t *testing.T) {
	_, err := run(t, "slots", "--start", "02:00", "--end", "03:00", "--date", "2025-03-09", "--tz", "America/New_York")
	assert.Error(t, err)
}

func TestSlots_VentanaInvalida(t *testing.T) {
	_, err := run(t, "slots", "--start", "10:00", "--end", "09:00")
	assert.Error(t, err)
}

func TestMigrate_DryRunListaVersiones(t *testing.T) {
	out, err := run(t, "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "001")
}
