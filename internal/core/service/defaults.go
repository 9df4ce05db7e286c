package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

// Default enrollment policy. These values belong to the entry points
// (interactive handler, batch runner), not to the reconciler: a caller that
// supplies its own values bypasses them entirely.
const (
	defaultPhoneLocalCode = "11"
	premiumTermDays       = 365
)

// DefaultInput builds the standard enrollment for a new member: premium for
// one year, a placeholder phone number, and a fresh correlation token.
func DefaultInput(name, email string) ports.ProvisionInput {
	expiration := time.Now().UTC().AddDate(0, 0, premiumTermDays)
	phone := randomPhoneNumber()
	localCode := defaultPhoneLocalCode
	externalID := NewExternalID()

	return ports.ProvisionInput{
		Name:           name,
		Email:          email,
		Premium:        true,
		ExpirationDate: &expiration,
		PhoneNumber:    &phone,
		PhoneLocalCode: &localCode,
		ExternalID:     &externalID,
	}
}

// NewExternalID generates a correlation token of the form
// SEC_<unix-millis>_<uuid-prefix>.
func NewExternalID() string {
	return fmt.Sprintf("SEC_%d_%s", time.Now().UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// randomPhoneNumber returns a 9-digit placeholder with no leading zero.
func randomPhoneNumber() string {
	return fmt.Sprintf("%d", rand.Intn(900000000)+100000000)
}
