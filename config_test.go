package yamledit_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamledit"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := yamledit.NewConfig()
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "format", cfg.Flags.Format)
}

func TestConfigRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := yamledit.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Set("format", "yaml"))
	assert.Equal(t, "yaml", cfg.Format)
}

func TestNewApplierSupportedFormat(t *testing.T) {
	t.Parallel()

	cfg := yamledit.NewConfig()
	cfg.Format = "yaml"

	applier, err := cfg.NewApplier()
	require.NoError(t, err)
	require.NotNil(t, applier)
}

func TestNewApplierUnsupportedFormat(t *testing.T) {
	t.Parallel()

	cfg := yamledit.NewConfig()
	cfg.Format = "toml"

	_, err := cfg.NewApplier()
	require.Error(t, err)
	assert.ErrorIs(t, err, yamledit.ErrUnsupportedFormat)
}
