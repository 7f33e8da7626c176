package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPubKey = "02a9a7399de89ec2e7de876bbe0b512f78f13d5d0a3315047e5b14109c8bac38f2"

func validContract() Contract {
	return Contract{
		"name":          "Tiero Token",
		"ticker":        "TIERO",
		"version":       json.Number("0"),
		"precision":     json.Number("8"),
		"issuer_pubkey": testPubKey,
		"entity": map[string]interface{}{
			"domain": "tiero.github.io",
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validContract().Validate())

	c := validContract()
	delete(c, "ticker")
	require.NoError(t, c.Validate())

	c = validContract()
	c["collection"] = "tiero"
	require.NoError(t, c.Validate())

	c = validContract()
	c["entity"] = Contract{"domain": "example.com"}
	require.NoError(t, c.Validate())
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c Contract)
		encoding bool
	}{
		{"missing name", func(c Contract) { delete(c, "name") }, false},
		{"empty name", func(c Contract) { c["name"] = "" }, false},
		{"numeric name", func(c Contract) { c["name"] = json.Number("1") }, false},
		{"non ascii name", func(c Contract) { c["name"] = "Tïero" }, false},
		{"short ticker", func(c Contract) { c["ticker"] = "TI" }, false},
		{"long ticker", func(c Contract) { c["ticker"] = "TIEROTIEROTIEROTIEROTIERO" }, false},
		{"ticker with space", func(c Contract) { c["ticker"] = "TI RO" }, false},
		{"null ticker", func(c Contract) { c["ticker"] = nil }, false},
		{"missing precision", func(c Contract) { delete(c, "precision") }, false},
		{"precision too high", func(c Contract) { c["precision"] = json.Number("9") }, false},
		{"negative precision", func(c Contract) { c["precision"] = -1 }, false},
		{"float precision", func(c Contract) { c["precision"] = json.Number("8.0") }, false},
		{"go float precision", func(c Contract) { c["precision"] = float64(8) }, false},
		{"string precision", func(c Contract) { c["precision"] = "8" }, false},
		{"missing version", func(c Contract) { delete(c, "version") }, false},
		{"unknown version", func(c Contract) { c["version"] = 1 }, false},
		{"missing pubkey", func(c Contract) { delete(c, "issuer_pubkey") }, false},
		{"pubkey not hex", func(c Contract) { c["issuer_pubkey"] = "zz" + testPubKey[2:] }, true},
		{"short pubkey", func(c Contract) { c["issuer_pubkey"] = testPubKey[:64] }, true},
		{"uncompressed pubkey", func(c Contract) {
			c["issuer_pubkey"] = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
				"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
		}, true},
		{"pubkey outside field", func(c Contract) {
			c["issuer_pubkey"] = "02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
		}, true},
		{"uppercase pubkey", func(c Contract) {
			c["issuer_pubkey"] = "02A9A7399DE89EC2E7DE876BBE0B512F78F13D5D0A3315047E5B14109C8BAC38F2"
		}, true},
		{"missing entity", func(c Contract) { delete(c, "entity") }, false},
		{"entity not object", func(c Contract) { c["entity"] = "tiero.github.io" }, false},
		{"missing domain", func(c Contract) { c["entity"] = map[string]interface{}{} }, false},
		{"invalid domain", func(c Contract) {
			c["entity"] = map[string]interface{}{"domain": "https://tiero.github.io"}
		}, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			c := validContract()
			tc.mutate(c)

			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidContract)
			if tc.encoding {
				require.ErrorIs(t, err, ErrEncoding)
			} else {
				require.NotErrorIs(t, err, ErrEncoding)
			}

			_, err = c.Hash()
			require.ErrorIs(t, err, ErrInvalidContract)
		})
	}
}
