package commands

import (
	"strings"

	"github.com/goliatone/go-sitefile/internal/logging"
	"github.com/goliatone/go-sitefile/pkg/interfaces"
)

// CommandLogger returns the logger for a group of command handlers, named
// sitefile.commands.<group>. An empty group falls back to "core".
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, "sitefile.commands."+group),
		map[string]any{"component": "command", "command_module": group},
	)
}
