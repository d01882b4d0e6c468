package crypto

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/EdgeApp/edge-gift-cards/internal/network"
)

// scalarOne yields the private key 0x00..01 forever.
type scalarOne struct{}

func (scalarOne) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	if len(p) > 0 {
		p[len(p)-1] = 1
	}
	return len(p), nil
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func mustParams(t *testing.T, name string) network.Params {
	t.Helper()
	p, err := network.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return p
}

func TestGenerateKnownVector(t *testing.T) {
	kp, err := Generate(scalarOne{}, mustParams(t, "bitcoin"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := kp.Address, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"; got != want {
		t.Errorf("Address = %s, want %s", got, want)
	}
	if got, want := kp.WIF, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"; got != want {
		t.Errorf("WIF = %s, want %s", got, want)
	}
}

func TestGeneratePerNetwork(t *testing.T) {
	tests := []struct {
		network string
		prefix  string
	}{
		{"litecoin", "L"},
		{"dogecoin", "D"},
		{"bitcoin", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			p := mustParams(t, tt.network)
			kp, err := Generate(nil, p)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(kp.PublicKey) != 33 {
				t.Errorf("len(PublicKey) = %d, want 33", len(kp.PublicKey))
			}
			if !strings.HasPrefix(kp.Address, tt.prefix) {
				t.Errorf("Address = %s, want prefix %s", kp.Address, tt.prefix)
			}

			// round trip: the address decodes to the version and hash it was built from
			version, hash, err := DecodeAddress(kp.Address)
			if err != nil {
				t.Fatalf("DecodeAddress() error = %v", err)
			}
			if version != p.PubKeyHash {
				t.Errorf("version = %#x, want %#x", version, p.PubKeyHash)
			}
			if !bytes.Equal(hash, Hash160(kp.PublicKey)) {
				t.Errorf("hash = %x, want %x", hash, Hash160(kp.PublicKey))
			}

			// cross-check against btcutil's own P2PKH encoder
			ref, err := btcutil.NewAddressPubKeyHash(hash, p.ChainParams())
			if err != nil {
				t.Fatalf("NewAddressPubKeyHash() error = %v", err)
			}
			if ref.EncodeAddress() != kp.Address {
				t.Errorf("btcutil address = %s, want %s", ref.EncodeAddress(), kp.Address)
			}

			wif, err := btcutil.DecodeWIF(kp.WIF)
			if err != nil {
				t.Fatalf("DecodeWIF() error = %v", err)
			}
			if !wif.IsForNet(p.ChainParams()) {
				t.Errorf("WIF %s is not for %s", kp.WIF, p.Name)
			}
			if !wif.CompressPubKey {
				t.Error("WIF is not compressed")
			}
			if !bytes.Equal(wif.SerializePubKey(), kp.PublicKey) {
				t.Error("WIF public key differs from PublicKey")
			}
		})
	}
}

func TestGenerateDistinct(t *testing.T) {
	p := mustParams(t, "litecoin")
	seen := make(map[string]struct{})
	for i := 0; i < 16; i++ {
		kp, err := Generate(nil, p)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if _, dup := seen[kp.WIF]; dup {
			t.Fatalf("duplicate key at %d", i)
		}
		seen[kp.WIF] = struct{}{}
	}
}

func TestGenerateEntropyFault(t *testing.T) {
	_, err := Generate(brokenReader{}, mustParams(t, "litecoin"))
	if !errors.Is(err, ErrKeyGeneration) {
		t.Fatalf("Generate() error = %v, want ErrKeyGeneration", err)
	}
}

func TestValidate(t *testing.T) {
	kp, err := Generate(nil, mustParams(t, "dogecoin"))
	if err != nil {
		t.Fatal(err)
	}
	good := &KeyPair{PublicKey: kp.PublicKey, WIF: "w", Address: "a"}
	tests := []struct {
		name string
		kp   *KeyPair
		ok   bool
	}{
		{"ok", good, true},
		{"nil", nil, false},
		{"short pubkey", &KeyPair{PublicKey: make([]byte, 65), WIF: "w", Address: "a"}, false},
		{"empty wif", &KeyPair{PublicKey: make([]byte, 33), Address: "a"}, false},
		{"empty address", &KeyPair{PublicKey: make([]byte, 33), WIF: "w"}, false},
		{"not on curve", &KeyPair{PublicKey: make([]byte, 33), WIF: "w", Address: "a"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kp.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrDerivationInvariant) {
				t.Errorf("Validate() error = %v, want ErrDerivationInvariant", err)
			}
		})
	}
}

func TestDecodeAddressRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeAddress("not-an-address"); err == nil {
		t.Error("DecodeAddress() error = nil")
	}
}
