package sql

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a SQL injection pattern found in chat input.
type InjectionCheckResult struct {
	IsSQLi      bool   // True if a SQL injection pattern was detected
	Fingerprint string // libinjection fingerprint of the detected pattern
}

// CheckUserQuery screens an incoming chat message for SQL injection payloads
// before it is ever sent to the completion backend. Natural-language
// questions, including Russian ones, do not fingerprint as SQLi; pasted
// payloads like "'; DROP TABLE videos--" do.
//
// Returns nil when the text is clean.
func CheckUserQuery(text string) *InjectionCheckResult {
	if text == "" {
		return nil
	}

	isSQLi, fingerprint := libinjection.IsSQLi(text)
	if isSQLi {
		return &InjectionCheckResult{
			IsSQLi:      true,
			Fingerprint: string(fingerprint),
		}
	}
	return nil
}
