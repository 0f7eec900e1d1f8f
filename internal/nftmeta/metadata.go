package nftmeta

import (
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
)

// metadata is the on-chain prefix of a Metaplex token-metadata account:
// key (u8), update authority (32), mint (32), then three borsh strings.
// Fields past the URI are irrelevant here and left undecoded.
type metadata struct {
	Name   string
	Symbol string
	URI    string
}

const maxFieldLen = 1024

func decodeMetadata(data []byte) (*metadata, error) {
	dec := bin.NewBorshDecoder(data)
	if _, err := dec.ReadUint8(); err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	if _, err := dec.ReadNBytes(64); err != nil {
		return nil, fmt.Errorf("read authority and mint: %w", err)
	}
	name, err := readBorshString(dec)
	if err != nil {
		return nil, fmt.Errorf("read name: %w", err)
	}
	symbol, err := readBorshString(dec)
	if err != nil {
		return nil, fmt.Errorf("read symbol: %w", err)
	}
	uri, err := readBorshString(dec)
	if err != nil {
		return nil, fmt.Errorf("read uri: %w", err)
	}
	return &metadata{Name: name, Symbol: symbol, URI: uri}, nil
}

// readBorshString reads a u32-length-prefixed string. Metaplex pads string
// fields with trailing NULs inside the declared length; those are stripped.
func readBorshString(dec *bin.Decoder) (string, error) {
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return "", err
	}
	if n > maxFieldLen {
		return "", fmt.Errorf("string length %d out of range", n)
	}
	buf, err := dec.ReadNBytes(int(n))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), "\x00"), nil
}
