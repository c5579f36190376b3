package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Active Personnel", "active_personnel"},
		{"ACTIVE PERSONNEL", "active_personnel"},
		{"  Cyber   Warfare ", "cyber_warfare"},
		{"Unit Cost ($)", "unit_cost"},
		{"already_a_slug", "already_a_slug"},
		{"Radar Cross Section (m²)", "radar_cross_section_m"},
		{"___leading___", "leading"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatSlug(tt.input))
		})
	}
}
