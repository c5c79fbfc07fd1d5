package tui

import (
	"strings"

	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/mdp/qrterminal/v3"
)

// renderEnrollment draws the otpauth URI as a half-block QR code followed by
// the secret for manual entry.
func renderEnrollment(setup models.TOTPSetup) string {
	var b strings.Builder

	if setup.URI != "" {
		qrterminal.GenerateHalfBlock(setup.URI, qrterminal.L, &b)
	}
	b.WriteString("\nCan't scan? Enter this key manually:\n  ")
	b.WriteString(secretStyle.Render(groupKey(setup.Secret)))
	b.WriteString("\n")

	return b.String()
}

// groupKey splits a base32 key into blocks of four for reading aloud.
func groupKey(secret string) string {
	var b strings.Builder
	for i, r := range secret {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
