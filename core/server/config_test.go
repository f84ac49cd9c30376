package server_test

import (
	"testing"
	"time"

	"lakecircle/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		wantErr bool
	}{
		{"Default", server.Config{Port: "8080", PlanCacheSeconds: 60}, false},
		{"NoCache", server.Config{Port: "80"}, false},
		{"NonNumericPort", server.Config{Port: "http"}, true},
		{"PortOutOfRange", server.Config{Port: "70000"}, true},
		{"EmptyPort", server.Config{}, true},
		{"NegativeCache", server.Config{Port: "8080", PlanCacheSeconds: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_PlanCacheTTL(t *testing.T) {
	assert.Equal(t, 90*time.Second, server.Config{PlanCacheSeconds: 90}.PlanCacheTTL())
}
