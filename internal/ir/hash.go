package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for plan fingerprints.
// Version suffix enables future algorithm migration.
const (
	DomainConversionPlan = "pageport/conversion-plan/v1"
	DomainPortablePlan   = "pageport/portable-plan/v1"
	DomainCatalog        = "pageport/catalog/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content hash of a value under a domain.
// Identical values always produce identical fingerprints.
func Fingerprint(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// PlanFingerprint fingerprints a conversion plan.
func PlanFingerprint(plan *ConversionPlan) (string, error) {
	return Fingerprint(DomainConversionPlan, plan)
}

// PortableFingerprint fingerprints a portable plan.
func PortableFingerprint(plan *PortablePlan) (string, error) {
	return Fingerprint(DomainPortablePlan, plan)
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(domain string, v any) string {
	fp, err := Fingerprint(domain, v)
	if err != nil {
		panic(err)
	}
	return fp
}
