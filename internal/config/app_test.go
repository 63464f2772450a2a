package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  AppConfig
		want error
	}{
		{"production with keys", AppConfig{Env: "production", AdminAPIKeys: []string{"k1"}}, nil},
		{"production without keys", AppConfig{Env: "production"}, ErrAdminKeysRequired},
		{"development without keys", AppConfig{Env: "development"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), tt.want)
		})
	}
}

func TestAppConfig_AdminAuthDisabled(t *testing.T) {
	assert.True(t, (&AppConfig{}).AdminAuthDisabled())
	assert.True(t, (&AppConfig{AdminAPIKeys: splitList(" , ")}).AdminAuthDisabled())
	assert.False(t, (&AppConfig{AdminAPIKeys: splitList("a, b")}).AdminAuthDisabled())
}
