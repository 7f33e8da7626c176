// Package issuance derives the identifiers of assets issued on Elements:
// the issuance entropy, committing to the spent prevout and to the contract
// hash, and from it the asset id and the reissuance token id.
package issuance

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/vulpemventures/fastsha256"
	"github.com/vulpemventures/go-elements-fun/contract"
	"github.com/vulpemventures/go-elements-fun/elementsutil"
	"github.com/vulpemventures/go-elements-fun/internal/bufferutil"
)

var (
	ErrInvalidTxHash     = errors.New("invalid tx hash length")
	ErrInvalidPrecision  = errors.New("invalid precision")
	ErrPrecisionMismatch = errors.New(
		"precision declared in contract does not match the one set as argument",
	)
	ErrMissingEntropy = errors.New("issuance entropy must not be nil")
	ErrInvalidFlag    = errors.New("invalid flag for reissuance token")

	zero = make([]byte, 32)
)

// TxIssuance defines the type for Issuance field in TxInput
type TxIssuance struct {
	AssetBlindingNonce []byte
	AssetEntropy       []byte
	AssetAmount        []byte
	TokenAmount        []byte
}

// IsReissuance returns whether the issuance is an asset re-issuance
func (issuance *TxIssuance) IsReissuance() bool {
	return !bytes.Equal(issuance.AssetBlindingNonce, zero)
}

// HasTokenAmount returns whether the token amount is defined for the issuance
func (issuance *TxIssuance) HasTokenAmount() bool {
	return len(issuance.TokenAmount) > 1
}

// Issuance adds fields to the issuance type that are not encoded in
// the transaction
type Issuance struct {
	TxIssuance
	Precision    uint
	ContractHash contract.Hash
}

// NewIssuanceFromContractHash returns a new issuance instance from contract hash
func NewIssuanceFromContractHash(contractHash contract.Hash) *Issuance {
	return &Issuance{ContractHash: contractHash}
}

// NewIssuanceFromEntropy returns a new issuance instance from entropy
func NewIssuanceFromEntropy(entropy []byte) *Issuance {
	return &Issuance{
		TxIssuance: TxIssuance{AssetEntropy: entropy},
	}
}

// NewIssuance returns a new issuance instance. A nil contract binds the
// issuance to the zero contract hash.
func NewIssuance(
	assetAmount uint64,
	tokenAmount uint64,
	precision uint,
	c *contract.IssuanceContract,
) (*Issuance, error) {
	if precision > contract.MaxPrecision {
		return nil, ErrInvalidPrecision
	}

	contractHash := contract.ZeroHash
	if c != nil {
		if c.Precision != precision {
			return nil, ErrPrecisionMismatch
		}

		h, err := c.Hash()
		if err != nil {
			return nil, err
		}
		contractHash = h
	}

	confAssetAmount, err := toConfidentialIssuanceAmount(assetAmount)
	if err != nil {
		return nil, err
	}

	confTokenAmount, err := toConfidentialIssuanceAmount(tokenAmount)
	if err != nil {
		return nil, err
	}

	issuance := TxIssuance{
		AssetAmount:        confAssetAmount,
		TokenAmount:        confTokenAmount,
		AssetBlindingNonce: make([]byte, 32),
	}

	return &Issuance{
		TxIssuance:   issuance,
		Precision:    precision,
		ContractHash: contractHash,
	}, nil
}

// ComputeEntropy returns the entropy of an issuance spending prevout and
// committing to contractHash.
func ComputeEntropy(prevout wire.OutPoint, contractHash contract.Hash) [32]byte {
	s := bufferutil.NewSerializer(nil)
	s.WriteSlice(prevout.Hash[:])
	s.WriteUint32(prevout.Index)

	buf := chainhash.DoubleHashB(s.Bytes())
	buf = append(buf, contractHash[:]...)
	return fastsha256.MidState256(buf)
}

// ComputeEntropyFromBytes is like ComputeEntropy for a prevout hash given in
// internal byte order.
func ComputeEntropyFromBytes(
	inTxHash []byte, inTxIndex uint32, contractHash contract.Hash,
) ([]byte, error) {
	if len(inTxHash) != chainhash.HashSize {
		return nil, ErrInvalidTxHash
	}

	var prevout wire.OutPoint
	copy(prevout.Hash[:], inTxHash)
	prevout.Index = inTxIndex

	entropy := ComputeEntropy(prevout, contractHash)
	return entropy[:], nil
}

// AssetID returns the id of the asset issued with the given entropy.
func AssetID(entropy [32]byte) [32]byte {
	buf := append(entropy[:], zero...)
	return fastsha256.MidState256(buf)
}

// ReissuanceTokenID returns the id of the reissuance token of the asset
// issued with the given entropy. Confidential issuances have a different
// token than explicit ones.
func ReissuanceTokenID(entropy [32]byte, confidential bool) [32]byte {
	buf := make([]byte, 64)
	copy(buf, entropy[:])
	buf[32] = 1
	if confidential {
		buf[32] = 2
	}
	return fastsha256.MidState256(buf)
}

// GenerateEntropy generates the entropy from which the hash of the asset and
// of the reissuance token are calculated
func (issuance *Issuance) GenerateEntropy(inTxHash []byte, inTxIndex uint32) error {
	entropy, err := ComputeEntropyFromBytes(inTxHash, inTxIndex, issuance.ContractHash)
	if err != nil {
		return err
	}

	log.Debugf("Generated entropy for issuance spending %v:%d with contract "+
		"hash %v", elementsutil.TxIDFromBytes(inTxHash), inTxIndex,
		issuance.ContractHash)

	issuance.TxIssuance.AssetEntropy = entropy
	return nil
}

// GenerateAsset calculates the asset hash for the given issuance
func (issuance *Issuance) GenerateAsset() ([]byte, error) {
	entropy, err := issuance.entropy()
	if err != nil {
		return nil, err
	}

	asset := AssetID(entropy)
	return asset[:], nil
}

// GenerateReissuanceToken calculates the reissuance token hash for the
// given issuance. flag is 1 for confidential issuances and 0 otherwise.
func (issuance *Issuance) GenerateReissuanceToken(flag uint) ([]byte, error) {
	entropy, err := issuance.entropy()
	if err != nil {
		return nil, err
	}
	if flag != 0 && flag != 1 {
		return nil, ErrInvalidFlag
	}

	token := ReissuanceTokenID(entropy, flag == 1)
	return token[:], nil
}

func (issuance *Issuance) entropy() ([32]byte, error) {
	var entropy [32]byte
	if len(issuance.TxIssuance.AssetEntropy) != len(entropy) {
		return entropy, ErrMissingEntropy
	}
	copy(entropy[:], issuance.TxIssuance.AssetEntropy)
	return entropy, nil
}

func toConfidentialIssuanceAmount(tokenAmount uint64) ([]byte, error) {
	if tokenAmount == 0 {
		return []byte{0x00}, nil
	}

	confAmount, err := elementsutil.ValueToBytes(tokenAmount)
	if err != nil {
		return nil, err
	}
	return confAmount[:], nil
}
