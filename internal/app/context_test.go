package app

import (
	"testing"

	"github.com/datallboy/otmget/internal/infra/config"
	"github.com/datallboy/otmget/internal/infra/logger"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	cfg := &config.Config{}
	a := NewContext(cfg, logger.Discard())
	b := NewContext(cfg, logger.Discard())

	require.NotNil(t, a.HTTPClient)
	assert.Same(t, cfg, a.Config)
	assert.NotEqual(t, a.RunID, b.RunID)

	_, err := ksuid.Parse(a.RunID)
	assert.NoError(t, err)
}
