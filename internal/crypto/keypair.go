package crypto

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/EdgeApp/edge-gift-cards/internal/network"
)

var (
	ErrKeyGeneration       = errors.New("key generation failed")
	ErrDerivationInvariant = errors.New("derivation invariant violated")
)

const compressedPubKeyLen = 33

// KeyPair is one card's key material. It is not modified after Generate.
type KeyPair struct {
	PublicKey []byte
	WIF       string
	Address   string
}

// Generate draws a fresh private scalar from rand (crypto/rand when nil) and
// encodes it for p. Entropy faults are returned as-is, never retried.
func Generate(rand io.Reader, p network.Params) (*KeyPair, error) {
	if rand == nil {
		rand = crand.Reader
	}
	priv, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	defer priv.Zero()

	wif, err := btcutil.NewWIF(priv, p.ChainParams(), true)
	if err != nil {
		return nil, fmt.Errorf("%w: wif: %v", ErrDerivationInvariant, err)
	}

	pub := priv.PubKey().SerializeCompressed()
	kp := &KeyPair{
		PublicKey: pub,
		WIF:       wif.String(),
		Address:   DeriveAddress(pub, p),
	}
	if err := kp.Validate(); err != nil {
		return nil, err
	}
	return kp, nil
}

func (k *KeyPair) Validate() error {
	switch {
	case k == nil:
		return fmt.Errorf("%w: nil key pair", ErrDerivationInvariant)
	case len(k.PublicKey) != compressedPubKeyLen:
		return fmt.Errorf("%w: public key is %d bytes", ErrDerivationInvariant, len(k.PublicKey))
	case k.WIF == "":
		return fmt.Errorf("%w: empty wif", ErrDerivationInvariant)
	case k.Address == "":
		return fmt.Errorf("%w: empty address", ErrDerivationInvariant)
	}
	if _, err := btcec.ParsePubKey(k.PublicKey); err != nil {
		return fmt.Errorf("%w: public key: %v", ErrDerivationInvariant, err)
	}
	return nil
}
