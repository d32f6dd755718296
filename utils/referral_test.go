package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBusinessID(t *testing.T) {
	tests := []struct {
		name       string
		entityType BusinessType
		prefix     string
	}{
		{"marketer", MarketerType, "MKT"},
		{"distributor", DistributorType, "DST"},
		{"admin", AdminType, "ADM"},
	}

	pattern := regexp.MustCompile(`^(MKT|DST|ADM)[0-9A-Z]+$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := GenerateBusinessID(tt.entityType)
			assert.True(t, len(id) > 3)
			assert.Equal(t, tt.prefix, id[:3])
			assert.Regexp(t, pattern, id)
		})
	}
}

func TestGenerateMarketerBusinessID(t *testing.T) {
	id := GenerateMarketerBusinessID()
	assert.Equal(t, "MKT", id[:3])
}

func TestGenerateReferralCode(t *testing.T) {
	code, err := GenerateReferralCode(MarketerType)
	require.NoError(t, err)
	assert.Regexp(t, `^MKT-[A-Z2-7]{6}$`, code)

	other, err := GenerateReferralCode(MarketerType)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}
