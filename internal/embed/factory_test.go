package embed

import (
	"testing"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_DefaultsToStub(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(Config{})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 384, p.Dimensions())
	assert.IsType(t, &stubProvider{}, p)
}

func TestNewProvider_Stub(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(Config{Provider: "stub"})
	require.NoError(t, err)
	assert.IsType(t, &stubProvider{}, p)
}

func TestNewProvider_Local(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(Config{Provider: "local", Endpoint: "127.0.0.1:9999"})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 384, p.Dimensions())
	assert.IsType(t, &localProvider{}, p)
}

func TestNewProvider_UnsupportedProvider(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(Config{Provider: "openai"})
	assert.Error(t, err)
	assert.Nil(t, p)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}
