package onboarding

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidRequest marks structural validation failures. The pipeline
// rejects these before any phase executes, dry-run included.
var ErrInvalidRequest = errors.New("invalid onboarding request")

// fqnPattern is the "domain.name" shape every FQN must have: lowercase
// segments of letters, digits, dashes, and underscores, at least two,
// separated by dots.
var fqnPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*(\.[a-z0-9][a-z0-9_-]*)+$`)

// ValidateRequest checks the request's structure: required entity-type
// fields, FQN shapes, and uniqueness within each collection.
func ValidateRequest(req *OnboardingRequest) error {
	et := req.EntityType
	if et.FQN == "" {
		return fmt.Errorf("%w: entity_type.fqn is required", ErrInvalidRequest)
	}
	if !fqnPattern.MatchString(et.FQN) {
		return fmt.Errorf("%w: entity_type.fqn %q is not a dotted FQN", ErrInvalidRequest, et.FQN)
	}
	if et.Name == "" {
		return fmt.Errorf("%w: entity_type.name is required", ErrInvalidRequest)
	}
	if et.Domain == "" {
		return fmt.Errorf("%w: entity_type.domain is required", ErrInvalidRequest)
	}

	seen := map[string]bool{}
	for _, attr := range req.Attributes {
		if attr.FQN == "" {
			return fmt.Errorf("%w: attribute with empty fqn", ErrInvalidRequest)
		}
		if !fqnPattern.MatchString(attr.FQN) {
			return fmt.Errorf("%w: attribute fqn %q is not a dotted FQN", ErrInvalidRequest, attr.FQN)
		}
		if seen[attr.FQN] {
			return fmt.Errorf("%w: duplicate attribute fqn %q", ErrInvalidRequest, attr.FQN)
		}
		seen[attr.FQN] = true
	}

	seen = map[string]bool{}
	for _, contract := range req.VerbContracts {
		if contract.FQN == "" {
			return fmt.Errorf("%w: verb contract with empty fqn", ErrInvalidRequest)
		}
		if seen[contract.FQN] {
			return fmt.Errorf("%w: duplicate verb contract fqn %q", ErrInvalidRequest, contract.FQN)
		}
		seen[contract.FQN] = true
	}

	seen = map[string]bool{}
	for _, fqn := range req.TaxonomyFQNs {
		if fqn == "" {
			return fmt.Errorf("%w: empty taxonomy fqn", ErrInvalidRequest)
		}
		if seen[fqn] {
			return fmt.Errorf("%w: duplicate taxonomy fqn %q", ErrInvalidRequest, fqn)
		}
		seen[fqn] = true
	}

	seen = map[string]bool{}
	for _, fqn := range req.ViewFQNs {
		if fqn == "" {
			return fmt.Errorf("%w: empty view fqn", ErrInvalidRequest)
		}
		if seen[fqn] {
			return fmt.Errorf("%w: duplicate view fqn %q", ErrInvalidRequest, fqn)
		}
		seen[fqn] = true
	}

	seen = map[string]bool{}
	for _, ev := range req.EvidenceRequirements {
		if ev.FQN == "" {
			return fmt.Errorf("%w: evidence requirement with empty fqn", ErrInvalidRequest)
		}
		if seen[ev.FQN] {
			return fmt.Errorf("%w: duplicate evidence requirement fqn %q", ErrInvalidRequest, ev.FQN)
		}
		seen[ev.FQN] = true
	}

	return nil
}
