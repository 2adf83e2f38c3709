package app

import (
	"fmt"
	"log/slog"

	"github.com/matrixmedia/matrix/pkg/cryptox"
	"github.com/matrixmedia/matrix/pkg/jwtx"
)

// SessionKeys is the signing material for session cookies.
type SessionKeys struct {
	Signer   *jwtx.EdDSASigner
	KeySet   *jwtx.KeySet
	Verifier *jwtx.EdDSAVerifier
}

// InitSessionKeys loads the Ed25519 session key from cfg.SessionKeyFile,
// generating and saving one on first start so sessions survive restarts.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*SessionKeys, error) {
	pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.SessionKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load session key: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session key: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	logger.Info("session signing key loaded", "kid", signer.KID(), "path", cfg.SessionKeyFile)

	return &SessionKeys{
		Signer:   signer,
		KeySet:   keys,
		Verifier: jwtx.NewVerifierEdDSA(keys, cfg.Issuer),
	}, nil
}
