package embed

import "github.com/so-keyldzn/semantiq/internal/apperr"

// Config selects and configures an embedding Provider.
type Config struct {
	// Provider is "stub" (default) or "local".
	Provider string

	// Endpoint is the local subprocess's host:port, used only when
	// Provider is "local".
	Endpoint string

	// BatchSize is carried for configuration but NewProvider does not read
	// it; EmbedBatches takes its batch size as an argument.
	BatchSize int
}

// NewProvider builds the Provider named by cfg.Provider.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "", "stub":
		return newStubProvider(), nil
	case "local":
		return newLocalProvider(cfg.Endpoint)
	default:
		return nil, apperr.New(apperr.InvalidInput, "unsupported embedding provider %q (supported: stub, local)", cfg.Provider)
	}
}
