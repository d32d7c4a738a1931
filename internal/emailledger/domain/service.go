package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

const (
	SourceSalary   = "salary"
	SourceContact  = "contact"
	SourceFeedback = "feedback"
)

type Service interface {
	// Record adds email to the ledger; a known email is a no-op.
	Record(ctx context.Context, email, source string) error
}

var ErrInvalidEmail = errors.New("invalid_email")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lower-cases an address so case variants share one ledger row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
