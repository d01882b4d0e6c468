package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // P2PKH is defined over RIPEMD-160

	"github.com/EdgeApp/edge-gift-cards/internal/network"
)

// DeriveAddress returns the base58check P2PKH address of a serialized public key.
func DeriveAddress(pub []byte, p network.Params) string {
	return base58.CheckEncode(Hash160(pub), p.PubKeyHash)
}

// DecodeAddress splits a P2PKH address into its version byte and 20-byte hash.
func DecodeAddress(addr string) (byte, []byte, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return 0, nil, fmt.Errorf("decode address %q: %w", addr, err)
	}
	if len(payload) != ripemd160.Size {
		return 0, nil, fmt.Errorf("decode address %q: payload is %d bytes", addr, len(payload))
	}
	return version, payload, nil
}

// Hash160 is RIPEMD160(SHA256(b)).
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}
