package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

// DevStdCryptoProvider is a development-only provider backed entirely
// by widely-used open-source primitives: SHA3-256 for hashing and
// secp256k1/ECDSA for signatures. It does not claim FIPS compliance and
// exists to unblock tooling and tests that need a concrete Provider.
type DevStdCryptoProvider struct{}

func (p DevStdCryptoProvider) SHA3_256(input []byte) [32]byte {
	h := sha3.New256()
	_, _ = h.Write(input)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sign produces a DER-encoded ECDSA signature over digest32 using
// privateKey as a raw 32-byte secp256k1 scalar.
func (p DevStdCryptoProvider) Sign(privateKey []byte, digest32 [32]byte) ([]byte, error) {
	if len(privateKey) != 32 {
		return nil, fmt.Errorf("crypto: private key must be 32 bytes, got %d", len(privateKey))
	}
	priv := secp256k1.PrivKeyFromBytes(privateKey)
	sig := ecdsa.Sign(priv, digest32[:])
	return sig.Serialize(), nil
}

// Verify reports whether sig is a valid ECDSA signature over digest32
// by the secp256k1 public key pubkey (33-byte compressed or 65-byte
// uncompressed form).
func (p DevStdCryptoProvider) Verify(pubkey []byte, digest32 [32]byte, sig []byte) bool {
	pub, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest32[:], pub)
}
