package qr

import (
	"errors"
	"fmt"
)

const DefaultScheme = "edge"

var ErrEmptyPayload = errors.New("empty payload input")

// PrivatePayload is the import URI encoded on the private side of a card.
func PrivatePayload(scheme, network, wif string) (string, error) {
	switch {
	case scheme == "":
		return "", fmt.Errorf("%w: scheme", ErrEmptyPayload)
	case network == "":
		return "", fmt.Errorf("%w: network", ErrEmptyPayload)
	case wif == "":
		return "", fmt.Errorf("%w: wif", ErrEmptyPayload)
	}
	return scheme + "://pay/" + network + "/" + wif, nil
}

func PublicPayload(address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("%w: address", ErrEmptyPayload)
	}
	return address, nil
}
