package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
)

type sampleRequest struct {
	CGPA   float64 `json:"cgpa" validate:"required,gte=0,lte=10"`
	Branch string  `json:"branch" validate:"required"`
	Skills int     `json:"technical_skills" validate:"gte=1,lte=5"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{CGPA: 8.5, Branch: "CSE", Skills: 4})
	assert.NoError(t, err)
}

func TestValidate_ReturnsDomainError(t *testing.T) {
	v := New()
	err := v.Validate(sampleRequest{CGPA: 11, Skills: 9})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	// JSON tag names, not Go field names.
	assert.Contains(t, details, "cgpa")
	assert.Contains(t, details, "branch")
	assert.Contains(t, details, "technical_skills")
}
