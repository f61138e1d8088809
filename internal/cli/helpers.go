package cli

import (
	"os"

	"github.com/so-keyldzn/semantiq/internal/config"
)

// projectRoot returns the working directory the teacher's own commands
// (index, mcp) root every relative path against.
func projectRoot() (string, error) {
	return os.Getwd()
}

// loadConfig loads configuration, preferring --config when set and
// otherwise searching .semantiq/config.yml under the working directory.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
