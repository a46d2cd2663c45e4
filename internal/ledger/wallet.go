// Package ledger turns a cycle's instruction set into a single signed
// transaction and submits it, so the two hedge legs land atomically or not at
// all.
package ledger

import (
	"errors"
	"os"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

// WalletKeyEnv names the env var holding the base58-encoded signing key.
// It is never read from config files.
const WalletKeyEnv = "ARB_WALLET_PRIVATE_KEY"

func LoadPrivateKeyFromEnv() (solana.PrivateKey, error) {
	_ = godotenv.Load() // best-effort
	b58 := os.Getenv(WalletKeyEnv)
	if b58 == "" {
		return nil, errors.New(WalletKeyEnv + " not set")
	}
	return solana.PrivateKeyFromBase58(b58)
}
