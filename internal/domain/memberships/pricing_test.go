package memberships

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceTable(t *testing.T) {
	testCases := []struct {
		audience AudienceType
		amount   int64
	}{
		{AudienceStudent, 300},
		{AudienceTeacher, 500},
		{AudienceInstitution, 5000},
		{AudienceProfessional, 1000},
		{AudienceCompany, 10000},
		{AudienceNGO, 2000},
	}

	for _, tc := range testCases {
		t.Run(string(tc.audience), func(t *testing.T) {
			amount, ok := Price(tc.audience)
			require.True(t, ok)
			assert.Equal(t, tc.amount, amount)
		})
	}
}

func TestPriceUnknownAudience(t *testing.T) {
	_, ok := Price(AudienceType("alien"))
	assert.False(t, ok)
}

func TestEveryAudienceHasConfig(t *testing.T) {
	for _, a := range AllAudiences() {
		cfg, ok := Config(a)
		require.True(t, ok, "audience %s", a)
		assert.NotEmpty(t, cfg.Title)
		assert.Positive(t, cfg.AmountINR)
	}
}

func TestParseAudienceType(t *testing.T) {
	for _, a := range AllAudiences() {
		got, err := ParseAudienceType(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAudienceType("vip")
	assert.Error(t, err)
}
