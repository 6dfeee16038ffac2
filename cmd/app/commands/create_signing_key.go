package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
)

// signingKeyBytes is the length of a generated QR signing secret.
const signingKeyBytes = 32

// RunCreateSigningKey generates a random QR signing secret and prints it as
// environment variables. With a KMS key URI the secret is encrypted by the
// keeper and QR_SIGNING_KEY holds the ciphertext.
//
// For local development use kmsKeyURI="base64key://<32-byte-base64-key>".
// Cloud keepers (gcpkms, awskms, azurekeyvault, hashivault) are used the same way.
func RunCreateSigningKey(
	ctx context.Context,
	kmsService qrService.KMSService,
	logger *slog.Logger,
	out io.Writer,
	kmsKeyURI string,
) error {
	secret := make([]byte, signingKeyBytes)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	if kmsKeyURI == "" {
		logger.Warn("signing key generated without KMS, keep it out of source control")

		_, _ = fmt.Fprintln(out, "# QR Signing Key Configuration")
		_, _ = fmt.Fprintln(out, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintf(out, "QR_SIGNING_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt signing key with KMS: %w", err)
	}

	_, _ = fmt.Fprintln(out, "# QR Signing Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(out, "QR_SIGNING_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}
