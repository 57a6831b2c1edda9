package partner

import (
	"strings"
	"time"
)

// Error kinds produced by the link layer, in addition to the token
// layer's kinds which propagate through unchanged.
const (
	KindValidation    = "validation"
	KindConflict      = "tenant already linked to a different partner ID"
	KindLinkedUnknown = "linked, id unknown"
	KindNoLink        = "no partner link found"
)

// Outcome is the definitive result of one link or unlink attempt against
// one tenant.
type Outcome struct {
	Success      bool
	Tenant       *Tenant
	PartnerID    string
	ErrorKind    string
	ErrorMessage string
	Details      string
	Timestamp    time.Time
}

func successOutcome(t *Tenant, partnerID, details string) Outcome {
	return Outcome{
		Success:   true,
		Tenant:    t,
		PartnerID: partnerID,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// failureOutcome builds a failed Outcome from a raw error string. The
// string is split on the first colon: the part before becomes the error
// kind and the remainder the message. A colon-free string is used as
// both. Downstream classification depends on this exact rule.
func failureOutcome(t *Tenant, partnerID, raw string) Outcome {
	kind, message, found := strings.Cut(raw, ":")
	if !found {
		kind = raw
		message = raw
	} else {
		message = strings.TrimSpace(message)
	}
	return Outcome{
		Tenant:       t,
		PartnerID:    partnerID,
		ErrorKind:    kind,
		ErrorMessage: message,
		Timestamp:    time.Now(),
	}
}

// failureOutcomeKind builds a failed Outcome with an explicit kind.
func failureOutcomeKind(t *Tenant, partnerID, kind, message, details string) Outcome {
	return Outcome{
		Tenant:       t,
		PartnerID:    partnerID,
		ErrorKind:    kind,
		ErrorMessage: message,
		Details:      details,
		Timestamp:    time.Now(),
	}
}
