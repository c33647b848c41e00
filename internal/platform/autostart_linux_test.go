//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDesktopEntry(t *testing.T) {
	entry := buildDesktopEntry("CampusZen", "/opt/Campus Zen/campuszen", TrayOnlyFlag)

	assert.Contains(t, entry, "Name=CampusZen\n")
	assert.Contains(t, entry, `Exec="/opt/Campus Zen/campuszen" -tray`+"\n")
	assert.Equal(t, "campus-zen.desktop", desktopFileName(" Campus Zen "))
}

func TestEnableDisableAutostart(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("CampusZen", "/usr/bin/campuszen", TrayOnlyFlag))
	path := filepath.Join(configDir, "autostart", "campuszen.desktop")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec=/usr/bin/campuszen -tray")

	require.NoError(t, service.DisableAutostart("CampusZen"))
	assert.NoFileExists(t, path)
	assert.NoError(t, service.DisableAutostart("CampusZen"))

	assert.Error(t, service.EnableAutostart("", "/usr/bin/campuszen"))
}
