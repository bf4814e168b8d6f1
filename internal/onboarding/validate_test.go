package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/semreg/internal/reg"
	"github.com/roach88/semreg/internal/testutil"
)

func validRequest() *OnboardingRequest {
	return &OnboardingRequest{EntityType: testutil.WidgetEntityType()}
}

func TestValidateRequest_Valid(t *testing.T) {
	assert.NoError(t, ValidateRequest(validRequest()))
}

func TestValidateRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OnboardingRequest)
	}{
		{"empty fqn", func(r *OnboardingRequest) { r.EntityType.FQN = "" }},
		{"undotted fqn", func(r *OnboardingRequest) { r.EntityType.FQN = "widget" }},
		{"uppercase fqn", func(r *OnboardingRequest) { r.EntityType.FQN = "Entity.Widget" }},
		{"empty name", func(r *OnboardingRequest) { r.EntityType.Name = "" }},
		{"empty domain", func(r *OnboardingRequest) { r.EntityType.Domain = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := ValidateRequest(req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestValidateRequest_DuplicateAttributes(t *testing.T) {
	req := validRequest()
	req.Attributes = []reg.AttributeDefBody{
		testutil.WidgetAttribute("weight"),
		testutil.WidgetAttribute("weight"),
	}
	err := ValidateRequest(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "duplicate attribute")
}

func TestValidateRequest_DuplicateViewFQNs(t *testing.T) {
	req := validRequest()
	req.ViewFQNs = []string{"view.a", "view.a"}
	err := ValidateRequest(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestValidateRequest_EmptyTaxonomyFQN(t *testing.T) {
	req := validRequest()
	req.TaxonomyFQNs = []string{""}
	err := ValidateRequest(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
