package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestDevStdSHA3_256_KnownVector(t *testing.T) {
	p := DevStdCryptoProvider{}
	sum := p.SHA3_256([]byte("abc"))
	// SHA3-256("abc")
	const want = "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
	got := hex.EncodeToString(sum[:])
	if got != want {
		t.Fatalf("digest mismatch: got=%s want=%s", got, want)
	}
}

func TestDevStdSignVerifyRoundTrip(t *testing.T) {
	p := DevStdCryptoProvider{}
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	pub := priv.PubKey().SerializeCompressed()
	digest := p.SHA3_256([]byte("transaction body"))

	sig, err := p.Sign(priv.Serialize(), digest)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if !p.Verify(pub, digest, sig) {
		t.Fatalf("Verify rejected a valid signature")
	}

	otherDigest := p.SHA3_256([]byte("different body"))
	if p.Verify(pub, otherDigest, sig) {
		t.Fatalf("Verify accepted a signature over the wrong digest")
	}
}

func TestDevStdVerifyRejectsMalformedInput(t *testing.T) {
	p := DevStdCryptoProvider{}
	var digest [32]byte
	if p.Verify([]byte("not a pubkey"), digest, []byte("not a sig")) {
		t.Fatalf("Verify unexpectedly returned true for malformed input")
	}
}
