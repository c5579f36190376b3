package generate

import (
	"testing"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefs = []domain.StatDefinition{
	{ID: "activePersonnel", Label: "Active Personnel", Format: domain.FormatNumber},
	{ID: "defenseBudget", Label: "Defense Budget", Format: domain.FormatCurrency},
	{ID: "techIndex", Label: "Technology Index", Format: domain.FormatSlider},
}

func validCandidate() *domain.Entity {
	return &domain.Entity{
		ID:       "FRA",
		Name:     "France",
		FlagCode: "fr",
		Score:    75,
		Rank:     7,
		Stats: map[string]float64{
			"activePersonnel": 205000,
			"defenseBudget":   55000000000,
			"techIndex":       8.5,
		},
	}
}

func TestAdmit_ValidCandidate(t *testing.T) {
	v := NewValidator()
	c := validCandidate()

	require.NoError(t, v.Admit(c, domain.KindNations, testDefs))
	assert.True(t, c.IsGenerated)
	assert.Equal(t, "fra", c.ID, "id is normalized to lowercase")
}

func TestAdmit_RejectsMissingStatKey(t *testing.T) {
	v := NewValidator()
	c := validCandidate()
	delete(c.Stats, "techIndex")

	err := v.Admit(c, domain.KindNations, testDefs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCandidate)
	assert.Contains(t, err.Error(), "techIndex")
}

func TestAdmit_RejectsUnregisteredStatKey(t *testing.T) {
	v := NewValidator()
	c := validCandidate()
	c.Stats["nuclearWarheads"] = 290

	err := v.Admit(c, domain.KindNations, testDefs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCandidate)
	assert.Contains(t, err.Error(), "nuclearWarheads")
	assert.False(t, c.IsGenerated, "rejected candidate is not flagged as generated")
}

func TestAdmit_RejectsMissingRequiredFields(t *testing.T) {
	v := NewValidator()

	c := validCandidate()
	c.ID = "  "
	assert.Error(t, v.Admit(c, domain.KindNations, testDefs))

	c = validCandidate()
	c.Name = ""
	assert.Error(t, v.Admit(c, domain.KindNations, testDefs))

	c = validCandidate()
	c.Score = 0
	assert.Error(t, v.Admit(c, domain.KindNations, testDefs))

	c = validCandidate()
	c.Rank = 0
	assert.Error(t, v.Admit(c, domain.KindNations, testDefs))

	c = validCandidate()
	c.FlagCode = ""
	err := v.Admit(c, domain.KindNations, testDefs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flagCode")

	c = validCandidate()
	c.Stats = nil
	assert.Error(t, v.Admit(c, domain.KindNations, testDefs))

	assert.Error(t, v.Admit(nil, domain.KindNations, testDefs))
}

func TestAdmit_AircraftRequiresOrigin(t *testing.T) {
	v := NewValidator()

	c := validCandidate()
	err := v.Admit(c, domain.KindAircraft, testDefs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin")

	c = validCandidate()
	c.Origin = "France"
	assert.NoError(t, v.Admit(c, domain.KindAircraft, testDefs))
}

func TestAdmit_CollectsAllProblems(t *testing.T) {
	v := NewValidator()
	c := &domain.Entity{Stats: map[string]float64{"bogus": 1}}

	err := v.Admit(c, domain.KindNations, testDefs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is missing")
	assert.Contains(t, err.Error(), "name is missing")
	assert.Contains(t, err.Error(), "bogus")
}
