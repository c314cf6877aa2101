package model

import "fmt"

// MalformedClaimError marks a claim that cannot be scored: empty text,
// or a confidence outside [0,1] after defaulting. The orchestrator
// recovers locally by issuing an UNVERIFIABLE verdict; it is never
// fatal to the run.
type MalformedClaimError struct {
	ClaimID string
	Reason  string
}

func (e *MalformedClaimError) Error() string {
	return fmt.Sprintf("malformed claim %s: %s", e.ClaimID, e.Reason)
}

// EvidenceMismatchError marks an evidence mapping entry that references
// a claim not present in the claim sequence. Logged and ignored.
type EvidenceMismatchError struct {
	ClaimID string
}

func (e *EvidenceMismatchError) Error() string {
	return fmt.Sprintf("evidence references unknown claim %s", e.ClaimID)
}

// ConfigurationRangeError marks a scoring option outside [0,1].
// Surfaced at configuration-load time, before any analysis begins.
type ConfigurationRangeError struct {
	Option string
	Value  float64
}

func (e *ConfigurationRangeError) Error() string {
	return fmt.Sprintf("configuration option %s out of range [0,1]: %g", e.Option, e.Value)
}
