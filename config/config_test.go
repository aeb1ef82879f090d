package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satoshinet/p2pcore/wireerr"
)

// resetForTest clears the one-shot guard between test cases. Production
// code never does this: Load is meant to run exactly once per process.
func resetForTest() {
	configureOnce = sync.Once{}
	configured = nil
}

func TestLoadDefaultsToMainNet(t *testing.T) {
	resetForTest()
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "mainnet", cfg.Params.Name)
	require.Equal(t, "/p2pcore/p2pcore:0.1.0/", cfg.UserAgent)
	require.EqualValues(t, 1, cfg.Services)
}

func TestLoadSecondCallFails(t *testing.T) {
	resetForTest()
	_, err := Load(nil)
	require.NoError(t, err)

	_, err = Load(nil)
	require.Error(t, err)
	we, ok := err.(*wireerr.Error)
	require.True(t, ok)
	require.Equal(t, wireerr.KindConfiguration, we.Kind)
}

func TestLoadRejectsUnknownNetwork(t *testing.T) {
	resetForTest()
	_, err := Load([]string{"--network=regtest"})
	require.Error(t, err)
}

func TestLoadSelectsTestNet(t *testing.T) {
	resetForTest()
	cfg, err := Load([]string{"--network=testnet"})
	require.NoError(t, err)
	require.Equal(t, "testnet", cfg.Params.Name)
}

func TestLoadOverridesFromYAMLFile(t *testing.T) {
	resetForTest()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "network: testnet\nappname: shelldemo\nservices: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load([]string{"--configfile=" + path})
	require.NoError(t, err)
	require.Equal(t, "testnet", cfg.Params.Name)
	require.Equal(t, "/shelldemo/p2pcore:0.1.0/", cfg.UserAgent)
	require.EqualValues(t, 1, cfg.Services)
}

func TestLoadFlagOverridesYAMLFile(t *testing.T) {
	resetForTest()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "network: testnet\nappname: fromfile\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load([]string{"--configfile=" + path, "--appname=fromflag"})
	require.NoError(t, err)
	require.Equal(t, "/fromflag/p2pcore:0.1.0/", cfg.UserAgent)
}

func TestCurrentReflectsLoadedConfig(t *testing.T) {
	resetForTest()
	_, ok := Current()
	require.False(t, ok)

	cfg, err := Load(nil)
	require.NoError(t, err)

	current, ok := Current()
	require.True(t, ok)
	require.Same(t, cfg, current)
}
