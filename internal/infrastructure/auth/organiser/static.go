package organiser

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/kickaround/pickup-league/internal/usecase"
)

// StaticVerifier checks the organiser PIN against a configured value. This
// is the default deployment mode; the HTTP Client exists for setups that
// centralise PIN checks.
type StaticVerifier struct {
	pin string
}

func NewStaticVerifier(pin string) *StaticVerifier {
	return &StaticVerifier{pin: strings.TrimSpace(pin)}
}

func (v *StaticVerifier) Verify(_ context.Context, pin string) error {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return fmt.Errorf("%w: organiser pin is required", usecase.ErrUnauthorized)
	}
	if v.pin == "" {
		return fmt.Errorf("%w: organiser pin is not configured", usecase.ErrDependencyUnavailable)
	}
	if subtle.ConstantTimeCompare([]byte(v.pin), []byte(pin)) != 1 {
		return fmt.Errorf("%w: wrong organiser pin", usecase.ErrUnauthorized)
	}
	return nil
}
