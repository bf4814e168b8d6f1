package scanner

import (
	"strings"

	"github.com/roach88/semreg/internal/reg"
)

// piiPatterns are substrings of an attribute FQN that mark it as personal
// data regardless of domain.
var piiPatterns = []string{
	"name",
	"address",
	"dob",
	"date_of_birth",
	"birth_date",
	"ssn",
	"social_security",
	"passport",
	"national_id",
	"tax_id",
	"phone",
	"email",
	"bank_account",
	"iban",
}

// financialDomains are domains whose attributes default to confidential.
var financialDomains = map[string]bool{
	"deal":     true,
	"billing":  true,
	"rate":     true,
	"fee":      true,
	"invoice":  true,
	"contract": true,
}

// SuggestSecurityLabel assigns a default label from FQN patterns, domain,
// and verb tags. Sanctions/screening outranks PII, which outranks financial;
// anything else gets the internal default.
func SuggestSecurityLabel(fqn, domain string, tags []string) reg.SecurityLabel {
	fqnLower := strings.ToLower(fqn)
	domainLower := strings.ToLower(domain)
	tagsLower := make([]string, len(tags))
	for i, t := range tags {
		tagsLower[i] = strings.ToLower(t)
	}

	hasPII := hasTag(tagsLower, "pii") || hasTag(tagsLower, "personal_data")
	if !hasPII {
		for _, p := range piiPatterns {
			if strings.Contains(fqnLower, p) {
				hasPII = true
				break
			}
		}
	}

	isSanctions := domainLower == "sanctions" || domainLower == "screening" || hasTag(tagsLower, "sanctions")
	isFinancial := financialDomains[domainLower] || hasTag(tagsLower, "financial")

	switch {
	case isSanctions:
		return reg.SecurityLabel{
			Classification:    reg.ClassificationRestricted,
			PII:               hasPII,
			PurposeLimitation: []string{"operations"},
			HandlingControls:  []string{reg.HandlingNoExport, reg.HandlingNoLLMExternal},
		}
	case hasPII:
		return reg.SecurityLabel{
			Classification:    reg.ClassificationConfidential,
			PII:               true,
			PurposeLimitation: []string{"operations", "audit"},
			HandlingControls:  []string{reg.HandlingMaskByDefault},
		}
	case isFinancial:
		return reg.SecurityLabel{
			Classification:   reg.ClassificationConfidential,
			HandlingControls: []string{reg.HandlingNoLLMExternal},
		}
	default:
		return reg.DefaultSecurityLabel()
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
