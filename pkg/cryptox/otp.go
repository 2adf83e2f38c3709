package cryptox

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// OTPDigits is the length of password reset codes.
const OTPDigits = 6

// GenerateNumericCode returns a fresh numeric one-time code. Each call
// derives the code from a new random HOTP secret and counter, so codes are
// independent of each other and nothing needs to be persisted but the code.
func GenerateNumericCode() (string, error) {
	var seed [28]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return "", fmt.Errorf("cryptox: otp entropy: %w", err)
	}

	secret := base32.StdEncoding.EncodeToString(seed[:20])
	counter := binary.BigEndian.Uint64(seed[20:])

	code, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("cryptox: otp generate: %w", err)
	}
	return code, nil
}
