// Package common contains shared constants and small helpers used across
// client components.
package common

const (
	// APIKeyHeaderName carries the service-level catalog API key. It is
	// independent of the user credential.
	APIKeyHeaderName = "x-api-key"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-Id"
)

// WipeByteArray overwrites b with zeros. Use it on password buffers once
// they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
