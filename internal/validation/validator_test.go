package validation

import (
	"testing"

	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Label  string  `json:"label" validate:"required,min=1,max=100"`
	Format string  `json:"format" validate:"required,oneof=number currency slider"`
	Score  float64 `json:"score" validate:"gte=0"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Label: "Tanks", Format: "number", Score: 50})
	assert.NoError(t, err)
}

func TestValidate_ReturnsFieldErrorsByJSONName(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{Format: "percentage", Score: -1})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "label")
	assert.Contains(t, details, "format")
	assert.Contains(t, details, "score")
	assert.Equal(t, "is required", details["label"])
	assert.Equal(t, "must be one of: number currency slider", details["format"])
}
