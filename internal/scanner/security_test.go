package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/semreg/internal/reg"
)

func TestSuggestSecurityLabel_PIIFromFQN(t *testing.T) {
	label := SuggestSecurityLabel("entity.date_of_birth", "entity", nil)
	assert.Equal(t, reg.ClassificationConfidential, label.Classification)
	assert.True(t, label.PII)
	assert.Contains(t, label.HandlingControls, reg.HandlingMaskByDefault)
}

func TestSuggestSecurityLabel_SanctionsDomain(t *testing.T) {
	label := SuggestSecurityLabel("screening.check_result", "screening", nil)
	assert.Equal(t, reg.ClassificationRestricted, label.Classification)
	assert.Contains(t, label.HandlingControls, reg.HandlingNoExport)
	assert.Contains(t, label.HandlingControls, reg.HandlingNoLLMExternal)
}

func TestSuggestSecurityLabel_SanctionsOutranksPII(t *testing.T) {
	label := SuggestSecurityLabel("sanctions.passport", "sanctions", nil)
	assert.Equal(t, reg.ClassificationRestricted, label.Classification)
	assert.True(t, label.PII)
}

func TestSuggestSecurityLabel_FinancialDomain(t *testing.T) {
	label := SuggestSecurityLabel("deal.rate_value", "deal", nil)
	assert.Equal(t, reg.ClassificationConfidential, label.Classification)
	assert.False(t, label.PII)
	assert.Contains(t, label.HandlingControls, reg.HandlingNoLLMExternal)
}

func TestSuggestSecurityLabel_TagsEscalate(t *testing.T) {
	label := SuggestSecurityLabel("cbu.status", "cbu", []string{"PII"})
	assert.Equal(t, reg.ClassificationConfidential, label.Classification)
	assert.True(t, label.PII)

	label = SuggestSecurityLabel("cbu.status", "cbu", []string{"financial"})
	assert.Equal(t, reg.ClassificationConfidential, label.Classification)
	assert.False(t, label.PII)
}

func TestSuggestSecurityLabel_Default(t *testing.T) {
	label := SuggestSecurityLabel("cbu.status", "cbu", nil)
	assert.Equal(t, reg.ClassificationInternal, label.Classification)
	assert.False(t, label.PII)
	assert.Empty(t, label.HandlingControls)
}
