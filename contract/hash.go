package contract

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashSize is the size in bytes of a contract hash.
const HashSize = chainhash.HashSize

// Hash is the commitment to a contract carried by an issuance.
type Hash [HashSize]byte

// ZeroHash is the contract hash of issuances without a contract.
var ZeroHash Hash

// NewHashFromStr parses a contract hash in the reversed byte order used by
// Elements RPCs and the asset registry.
func NewHashFromStr(s string) (*Hash, error) {
	if len(s) != HashSize*2 {
		return nil, fmt.Errorf(
			"%w: contract hash must be %d hex characters, got %d",
			ErrEncoding, HashSize*2, len(s),
		)
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	ret := Hash(*h)
	return &ret, nil
}

// String returns the hash as reversed hex.
func (h Hash) String() string {
	return chainhash.Hash(h).String()
}

// CloneBytes returns a copy of the hash in internal byte order.
func (h Hash) CloneBytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// IsZero reports whether h is ZeroHash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Hash validates c and returns the SHA-256 of its canonical serialization.
func (c Contract) Hash() (Hash, error) {
	if err := c.Validate(); err != nil {
		log.Debugf("Rejected contract: %v", err)
		return ZeroHash, err
	}
	return c.CanonicalHash()
}

// CanonicalHash returns the SHA-256 of the canonical serialization of c
// without checking the registry schema. It serves contracts of custom
// formats.
func (c Contract) CanonicalHash() (Hash, error) {
	b, err := c.Canonical()
	if err != nil {
		log.Debugf("Rejected contract: %v", err)
		return ZeroHash, err
	}

	h := Hash(chainhash.HashH(b))
	log.Tracef("Contract hash %v over %d canonical bytes", h, len(b))

	return h, nil
}
