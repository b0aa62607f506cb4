package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
)

func TestNewSugaredLogger(t *testing.T) {
	tests := []struct {
		name        string
		config      map[string]interface{}
		expectError bool
	}{
		{
			name: "json production logger",
			config: map[string]interface{}{
				"logging": map[string]interface{}{
					"level":    "info",
					"encoding": "json",
				},
			},
		},
		{
			name: "console development logger",
			config: map[string]interface{}{
				"logging": map[string]interface{}{
					"level":       "debug",
					"development": true,
					"encoding":    "console",
				},
			},
		},
		{
			name: "unknown encoding falls back to json",
			config: map[string]interface{}{
				"logging": map[string]interface{}{
					"level":    "warn",
					"encoding": "xml",
				},
			},
		},
		{
			name: "invalid level",
			config: map[string]interface{}{
				"logging": map[string]interface{}{
					"level": "shout",
				},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := config.NewStaticProvider(tt.config)
			require.NoError(t, err)

			sugar, err := NewSugaredLogger(provider)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sugar)
			assert.NotNil(t, NewLogger(sugar))
		})
	}
}
