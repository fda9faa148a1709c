package main

import (
	"testing"

	"github.com/OpportunityProxy/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_ResolvesGraph(t *testing.T) {
	cfg := &config.Config{
		ServerPort:              "0",
		CountriesURL:            config.DefaultCountriesURL,
		SearchURL:               config.DefaultSearchURL,
		BreakerFailureThreshold: 5,
		LogSampleInterval:       10,
	}

	fxApp := newApp(cfg)

	require.NoError(t, fxApp.Err())
}

func TestRootCommand_PortFlag(t *testing.T) {
	t.Setenv("PORT", "7000")

	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "6000"}))
	port, err := cmd.Flags().GetString("port")
	require.NoError(t, err)

	cfg := config.Load()
	applyFlags(cmd, cfg, port)
	assert.Equal(t, "0.0.0.0:6000", cfg.Addr())
}

func TestRootCommand_PortFromEnvWithoutFlag(t *testing.T) {
	t.Setenv("PORT", "7000")

	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse(nil))

	cfg := config.Load()
	applyFlags(cmd, cfg, "")
	assert.Equal(t, "0.0.0.0:7000", cfg.Addr())
}
