package slip77

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/vulpemventures/go-elements-fun/internal/bufferutil"
	"github.com/vulpemventures/go-elements-fun/slip21"
)

const (
	// MasterKeySize is the size in bytes of a master blinding key.
	MasterKeySize = 32
	// BlindingKeySize is the size in bytes of a blinding private key.
	BlindingKeySize = 32
)

var (
	// ErrInvalidMasterKey is returned for master blinding keys that are not
	// 32 bytes long.
	ErrInvalidMasterKey = fmt.Errorf("%w: invalid master key", slip21.ErrEncoding)
	// ErrInvalidScript is returned when deriving a key for an empty script.
	ErrInvalidScript = fmt.Errorf("%w: invalid script", slip21.ErrEncoding)
	// ErrInvalidBlindingKey is returned when the derived key is not a valid
	// secp256k1 scalar. The chance of hitting it is negligible.
	ErrInvalidBlindingKey = errors.New("derived blinding key is out of range")

	label = slip21.NewPath("SLIP-0077")
)

// BlindingKey is the private blinding key of a confidential output.
type BlindingKey [BlindingKeySize]byte

// PrivKey returns the blinding key as a secp256k1 private key.
func (k *BlindingKey) PrivKey() *btcec.PrivateKey {
	privKey, _ := btcec.PrivKeyFromBytes(k[:])
	return privKey
}

// PubKey returns the public blinding key, the one encoded in confidential
// addresses.
func (k *BlindingKey) PubKey() *btcec.PublicKey {
	_, pubKey := btcec.PrivKeyFromBytes(k[:])
	return pubKey
}

// Zero wipes the key.
func (k *BlindingKey) Zero() {
	bufferutil.Wipe(k[:])
}

type Slip77 struct {
	MasterKey []byte
}

// FromMasterKey sets the provided master key to the returned instance of Slip77
func FromMasterKey(masterKey []byte) (*Slip77, error) {
	if len(masterKey) != MasterKeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidMasterKey, MasterKeySize, len(masterKey),
		)
	}

	key := make([]byte, MasterKeySize)
	copy(key, masterKey)

	return &Slip77{
		MasterKey: key,
	}, nil
}

// FromSeed derives the master key from the given seed and uses it to create
// and return a new Slip77 instance
func FromSeed(seed []byte) (*Slip77, error) {
	node, err := slip21.DerivePath(seed, label)
	if err != nil {
		return nil, err
	}
	defer node.Zero()

	log.Debugf("Derived master blinding key at %v", label)

	return &Slip77{
		MasterKey: node.Key(),
	}, nil
}

// DeriveBlindingKey derives the private blinding key of the output locked by
// script.
func (s *Slip77) DeriveBlindingKey(script []byte) (*BlindingKey, error) {
	if len(s.MasterKey) != MasterKeySize {
		return nil, fmt.Errorf("%w: master key must be defined", ErrInvalidMasterKey)
	}
	if len(script) <= 0 {
		return nil, ErrInvalidScript
	}

	hmacKey := hmac.New(sha256.New, s.MasterKey)
	hmacKey.Write(script)
	sum := hmacKey.Sum(nil)
	defer bufferutil.Wipe(sum)

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(sum)
	isZero := scalar.IsZero()
	scalar.Zero()
	if overflow || isZero {
		log.Warnf("Blinding key for script of %d bytes is out of range",
			len(script))
		return nil, ErrInvalidBlindingKey
	}

	var key BlindingKey
	copy(key[:], sum)
	return &key, nil
}

// DeriveKey derives a private key from the master key of the Slip77 type
// and a provided script
func (s *Slip77) DeriveKey(script []byte) (*btcec.PrivateKey, *btcec.PublicKey, error) {
	key, err := s.DeriveBlindingKey(script)
	if err != nil {
		return nil, nil, err
	}
	defer key.Zero()

	privateKey, publicKey := btcec.PrivKeyFromBytes(key[:])

	return privateKey, publicKey, nil
}

// Zero wipes the master key. The instance can't derive keys afterwards.
func (s *Slip77) Zero() {
	bufferutil.Wipe(s.MasterKey)
	s.MasterKey = nil
}
