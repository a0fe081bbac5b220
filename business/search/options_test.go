//go:build !integration

package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero value is valid", Options{}, false},
		{"defaults are valid", DefaultOptions(), false},
		{"negative top k", Options{TopK: -1}, true},
		{"negative popularity factor", Options{PopularityBoostFactor: -0.1}, true},
		{"negative seasonal factor", Options{SeasonalBoostFactor: -0.1}, true},
		{"personalization cap below one", Options{MaxPersonalization: 0.5}, true},
		{"personalization cap of one", Options{MaxPersonalization: 1.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{}.withDefaults()

	assert.Equal(t, 50, got.TopK)
	assert.InDelta(t, 0.2, got.PopularityBoostFactor, 1e-9)
	assert.InDelta(t, 0.15, got.SeasonalBoostFactor, 1e-9)
	assert.InDelta(t, 1.5, got.MaxPersonalization, 1e-9)
	assert.Equal(t, 2*time.Second, got.RetrieverTimeout)

	// Explicit values survive.
	custom := Options{TopK: 10, RetrieverTimeout: time.Second}.withDefaults()
	assert.Equal(t, 10, custom.TopK)
	assert.Equal(t, time.Second, custom.RetrieverTimeout)
}
