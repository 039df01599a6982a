package otp

import (
	"fmt"
	"moapyr/internal/core/domain"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	secretSize = 20
	period     = 30
	skew       = 1
)

// Validator generates TOTP enrollments and checks six digit codes
type Validator struct {
	issuer string
	opts   totp.ValidateOpts
}

// NewValidator creates a validator labelling enrollments with issuer
func NewValidator(issuer string) *Validator {
	return &Validator{
		issuer: issuer,
		opts: totp.ValidateOpts{
			Period:    period,
			Skew:      skew,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		},
	}
}

// GenerateSecret creates a 160 bit base32 secret and its otpauth provisioning URI
func (v *Validator) GenerateSecret(username string) (*domain.Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      v.issuer,
		AccountName: username,
		Period:      period,
		SecretSize:  secretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp key: %w", err)
	}

	return &domain.Enrollment{
		Username:        username,
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
	}, nil
}

// Validate accepts a code from the current time step or one step either side
func (v *Validator) Validate(code string, secret string, at time.Time) (bool, error) {
	return totp.ValidateCustom(code, secret, at.UTC(), v.opts)
}

// GenerateCode returns the code of the time step containing at
func (v *Validator) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at.UTC(), v.opts)
}
