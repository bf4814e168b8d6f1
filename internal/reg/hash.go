package reg

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Domain prefixes for content-addressed hashing.
// Version suffix enables future algorithm migration.
const (
	DomainObjectID   = "semreg/object/v1"
	DomainDefinition = "semreg/definition/v1"
)

// objectNamespace is the fixed UUID namespace for object identity.
// Changing it would re-key every object in every registry; never do that.
var objectNamespace = uuid.MustParse("6f1c7a0e-3d52-4a9b-8f4e-2b9d1c5a7e60")

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ObjectIDFor computes the content-addressed identity for an object.
// Identical (type, fqn) pairs always yield the same UUID, across processes
// and runs. The identity is NOT the snapshot key - it is the stable anchor
// that all versions of "the same object" share.
func ObjectIDFor(objectType ObjectType, fqn string) uuid.UUID {
	data := make([]byte, 0, len(objectType)+1+len(fqn))
	data = append(data, []byte(objectType)...)
	data = append(data, 0x00)
	data = append(data, []byte(fqn)...)
	return uuid.NewSHA1(objectNamespace, data)
}

// DefinitionHash computes the drift-detection hash of a definition payload.
// The hash is invariant to field-insertion order (canonical JSON sorts keys)
// and changes for any byte-level change in a field value.
func DefinitionHash(definition map[string]any) (string, error) {
	canonical, err := MarshalCanonical(definition)
	if err != nil {
		return "", fmt.Errorf("definition hash: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// MustDefinitionHash is like DefinitionHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDefinitionHash(definition map[string]any) string {
	hash, err := DefinitionHash(definition)
	if err != nil {
		panic(err)
	}
	return hash
}
