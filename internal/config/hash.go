package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns a content hash of the configuration record. Two
// configurations with equal records share a fingerprint, so runs of the
// same benchmark can be correlated.
func Fingerprint(c *Configuration) (string, error) {
	data, err := json.Marshal(ToRecord(c))
	if err != nil {
		return "", fmt.Errorf("fingerprint: marshal record: %w", err)
	}
	return hashWithDomain(DomainConfiguration, data), nil
}
