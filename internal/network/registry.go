package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

var ErrUnknownNetwork = errors.New("unknown network")

// BIP32 holds the extended key version words.
type BIP32 struct {
	Public  uint32
	Private uint32
}

// Params describes how keys and addresses are encoded on one chain.
type Params struct {
	Name          string
	CurrencyCode  string
	MessagePrefix string
	Bech32HRP     string
	BIP32         BIP32
	PubKeyHash    byte
	ScriptHash    byte
	WIF           byte
}

// registry is data only: adding a chain is adding a row.
var registry = map[string]Params{
	"bitcoin": {
		Name:          "bitcoin",
		CurrencyCode:  "btc",
		MessagePrefix: "\x18Bitcoin Signed Message:\n",
		Bech32HRP:     "bc",
		BIP32:         BIP32{Public: 0x0488b21e, Private: 0x0488ade4},
		PubKeyHash:    0x00,
		ScriptHash:    0x05,
		WIF:           0x80,
	},
	"litecoin": {
		Name:          "litecoin",
		CurrencyCode:  "ltc",
		MessagePrefix: "\x19Litecoin Signed Message:\n",
		Bech32HRP:     "ltc",
		BIP32:         BIP32{Public: 0x019da462, Private: 0x019d9cfe},
		PubKeyHash:    0x30,
		ScriptHash:    0x32,
		WIF:           0xb0,
	},
	"dogecoin": {
		Name:          "dogecoin",
		CurrencyCode:  "doge",
		MessagePrefix: "\x18Dogecoin Signed Message:\n",
		Bech32HRP:     "dge",
		BIP32:         BIP32{Public: 0x02facafd, Private: 0x02fac398},
		PubKeyHash:    0x1e,
		ScriptHash:    0x16,
		WIF:           0x9e,
	},
}

// Lookup returns the parameters registered under name.
func Lookup(name string) (Params, error) {
	p, ok := registry[strings.TrimSpace(name)]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownNetwork, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ChainParams adapts the row to btcd's chaincfg so btcutil encoders accept it.
func (p Params) ChainParams() *chaincfg.Params {
	cp := &chaincfg.Params{
		Name:             p.Name,
		Bech32HRPSegwit:  p.Bech32HRP,
		PubKeyHashAddrID: p.PubKeyHash,
		ScriptHashAddrID: p.ScriptHash,
		PrivateKeyID:     p.WIF,
	}
	binary.BigEndian.PutUint32(cp.HDPublicKeyID[:], p.BIP32.Public)
	binary.BigEndian.PutUint32(cp.HDPrivateKeyID[:], p.BIP32.Private)
	return cp
}
