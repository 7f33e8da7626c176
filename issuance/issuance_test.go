package issuance

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-elements-fun/contract"
	"github.com/vulpemventures/go-elements-fun/elementsutil"
)

var tieroContract = contract.IssuanceContract{
	Name:      "Tiero Token",
	Ticker:    "TIERO",
	Version:   0,
	Precision: 8,
	PubKey:    "02a9a7399de89ec2e7de876bbe0b512f78f13d5d0a3315047e5b14109c8bac38f2",
	Entity: contract.IssuanceEntity{
		Domain: "tiero.github.io",
	},
}

var issuanceTests = []struct {
	name            string
	txid            string
	index           uint32
	contract        *contract.IssuanceContract
	expectedEntropy string
	expectedAsset   string
	expectedToken   string
	expectedCToken  string
}{
	{
		name:            "no contract",
		txid:            "05a047c98e82a848dee94efcf32462b065198bebf2404d201ba2e06db30b28f4",
		index:           0,
		expectedEntropy: "746f447f691323502cad2ef646f932613d37a83aeaa2133185b316648df4b70a",
		expectedAsset:   "dcd60818d863b5c026c40b2bc3ba6fdaf5018bcc8606c18adf7db4da0bcd8533",
		expectedToken:   "c1adb114f4f87d33bf9ce90dd4f9ca523dd414d6cd010a7917903e2009689530",
		expectedCToken:  "d08425cac1a728360ae7c8aad2b21e9a04d1ab1c09959562661e5f13d9c5f803",
	},
	{
		name:            "contract",
		txid:            "6f3d82e0c1d1ed6a62ec3a8b0c0bdc66d9fdb09e5f35bf0e3e1fb6b6a5d3e7c1",
		index:           0,
		contract:        &tieroContract,
		expectedEntropy: "b3462b054cea4a5b30b6357cf3e98e5b9a0b58419ff5f823784002291fcbba10",
		expectedAsset:   "180a89681155b31c44e5fddab46020f1d13c350a7379a5bc715fe48e8c4c7234",
		expectedToken:   "2e3e5442c729a1af274fea13e41583dbab53c766c72076266fd130115fbc4999",
		expectedCToken:  "d9721bb8cdfed8f201f2a0e18054c8f759c836ffb5df7d6742b4697287f190de",
	},
	{
		name:            "contract second output",
		txid:            "6f3d82e0c1d1ed6a62ec3a8b0c0bdc66d9fdb09e5f35bf0e3e1fb6b6a5d3e7c1",
		index:           1,
		contract:        &tieroContract,
		expectedEntropy: "3a0a151755e0d452b4bd5928e0338b5e8552520b589928c8cdb048e03c6b3007",
		expectedAsset:   "1a99607c5df2c7d1262d2329d1126540567626de4d6509b546f1a5c71587569a",
		expectedToken:   "f74a737af63ded3444ae57adcca87ba30238d856776f3b614abb49d1c2c505e0",
		expectedCToken:  "8ecf140ced5c63db3d7efc6f280aa5d5666e2b841a7095fc727275661a659fbf",
	},
}

func TestIssuanceGeneration(t *testing.T) {
	for _, v := range issuanceTests {
		v := v
		t.Run(v.name, func(t *testing.T) {
			precision := uint(0)
			if v.contract != nil {
				precision = v.contract.Precision
			}
			issuance, err := NewIssuance(1000, 1, precision, v.contract)
			require.NoError(t, err)

			inTxHash, err := elementsutil.TxIDToBytes(v.txid)
			require.NoError(t, err)

			err = issuance.GenerateEntropy(inTxHash, v.index)
			require.NoError(t, err)
			assert.Equal(t, v.expectedEntropy, elementsutil.TxIDFromBytes(issuance.AssetEntropy))

			asset, err := issuance.GenerateAsset()
			require.NoError(t, err)
			assert.Equal(t, v.expectedAsset, elementsutil.TxIDFromBytes(asset))

			token, err := issuance.GenerateReissuanceToken(0)
			require.NoError(t, err)
			assert.Equal(t, v.expectedToken, elementsutil.TxIDFromBytes(token))

			token, err = issuance.GenerateReissuanceToken(1)
			require.NoError(t, err)
			assert.Equal(t, v.expectedCToken, elementsutil.TxIDFromBytes(token))
		})
	}
}

func TestComputeEntropyFromOutPoint(t *testing.T) {
	for _, v := range issuanceTests {
		hash, err := chainhash.NewHashFromStr(v.txid)
		require.NoError(t, err)

		contractHash := contract.ZeroHash
		if v.contract != nil {
			contractHash, err = v.contract.Hash()
			require.NoError(t, err)
		}

		entropy := ComputeEntropy(*wire.NewOutPoint(hash, v.index), contractHash)
		assert.Equal(t, v.expectedEntropy, elementsutil.TxIDFromBytes(entropy[:]))

		asset := AssetID(entropy)
		assert.Equal(t, v.expectedAsset, elementsutil.TxIDFromBytes(asset[:]))

		token := ReissuanceTokenID(entropy, false)
		assert.Equal(t, v.expectedToken, elementsutil.TxIDFromBytes(token[:]))
	}
}

func TestNewIssuance(t *testing.T) {
	issuance, err := NewIssuance(10, 0, 8, &tieroContract)
	require.NoError(t, err)

	assetAmount, err := elementsutil.ValueFromBytes(issuance.AssetAmount)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), assetAmount)
	assert.Equal(t, []byte{0x00}, issuance.TokenAmount)
	assert.False(t, issuance.HasTokenAmount())
	assert.False(t, issuance.IsReissuance())
	assert.Equal(
		t,
		"d5c4363ee9cf2a4319c2f0ccc04cdb83d6213e4d26d94d70003c58eaf2473866",
		issuance.ContractHash.String(),
	)

	issuance, err = NewIssuance(10, 2, 0, nil)
	require.NoError(t, err)
	assert.True(t, issuance.HasTokenAmount())
	assert.True(t, issuance.ContractHash.IsZero())
}

func TestNewIssuanceInvalid(t *testing.T) {
	_, err := NewIssuance(10, 2, 9, nil)
	require.ErrorIs(t, err, ErrInvalidPrecision)

	_, err = NewIssuance(10, 2, 2, &tieroContract)
	require.ErrorIs(t, err, ErrPrecisionMismatch)

	invalid := tieroContract
	invalid.PubKey = "02"
	_, err = NewIssuance(10, 2, 8, &invalid)
	require.ErrorIs(t, err, contract.ErrInvalidContract)
	require.ErrorIs(t, err, contract.ErrEncoding)
}

func TestIssuanceFromEntropy(t *testing.T) {
	entropy, _ := hex.DecodeString(
		"0ab7f48d6416b3853113a2ea3aa8373d6132f946f62ead2c502313697f446f74",
	)
	issuance := NewIssuanceFromEntropy(entropy)

	asset, err := issuance.GenerateAsset()
	require.NoError(t, err)
	assert.Equal(t, issuanceTests[0].expectedAsset, elementsutil.TxIDFromBytes(asset))

	_, err = issuance.GenerateReissuanceToken(2)
	require.ErrorIs(t, err, ErrInvalidFlag)
}

func TestIssuanceWithoutEntropy(t *testing.T) {
	issuance := NewIssuanceFromContractHash(contract.ZeroHash)

	_, err := issuance.GenerateAsset()
	require.ErrorIs(t, err, ErrMissingEntropy)

	_, err = issuance.GenerateReissuanceToken(0)
	require.ErrorIs(t, err, ErrMissingEntropy)

	err = issuance.GenerateEntropy(make([]byte, 31), 0)
	require.ErrorIs(t, err, ErrInvalidTxHash)
}
