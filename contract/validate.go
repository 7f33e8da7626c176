package contract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// MaxPrecision is the highest number of decimal digits of an asset.
	MaxPrecision = 8
	// Version is the only contract version currently defined.
	Version = 0

	maxNameLength = 255
)

var (
	tickerRegexp = regexp.MustCompile(`^[a-zA-Z0-9.\-]{3,24}$`)
	domainRegexp = regexp.MustCompile(
		`(?i)^([a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`,
	)
)

// Validate checks c against the fields required by the Liquid asset
// registry. Fields it doesn't know about are allowed.
func (c Contract) Validate() error {
	name, err := stringField(c, "name")
	if err != nil {
		return err
	}
	if len(name) == 0 || len(name) > maxNameLength || !isASCII(name) {
		return invalidf("name must be 1 to %d ASCII characters", maxNameLength)
	}

	if _, ok := c["ticker"]; ok {
		ticker, err := stringField(c, "ticker")
		if err != nil {
			return err
		}
		if !tickerRegexp.MatchString(ticker) {
			return invalidf("ticker %q must match %s", ticker, tickerRegexp)
		}
	}

	precision, err := integerField(c, "precision")
	if err != nil {
		return err
	}
	if precision < 0 || precision > MaxPrecision {
		return invalidf("precision must be between 0 and %d", MaxPrecision)
	}

	version, err := integerField(c, "version")
	if err != nil {
		return err
	}
	if version != Version {
		return invalidf("unsupported version %d", version)
	}

	pubkey, err := stringField(c, "issuer_pubkey")
	if err != nil {
		return err
	}
	if err := validatePubKey(pubkey); err != nil {
		return err
	}

	entity, ok := c["entity"]
	if !ok {
		return invalidf("missing field entity")
	}
	var entityObj map[string]interface{}
	switch e := entity.(type) {
	case map[string]interface{}:
		entityObj = e
	case Contract:
		entityObj = e
	default:
		return invalidf("entity must be an object, got %T", entity)
	}
	domain, err := stringField(entityObj, "domain")
	if err != nil {
		return fmt.Errorf("entity: %w", err)
	}
	if !domainRegexp.MatchString(domain) {
		return invalidf("entity domain %q is not a valid domain name", domain)
	}

	return nil
}

func validatePubKey(pubkey string) error {
	b, err := hex.DecodeString(pubkey)
	if err != nil {
		return encodingf("issuer_pubkey is not hex: %v", err)
	}
	if len(b) != btcec.PubKeyBytesLenCompressed {
		return encodingf(
			"issuer_pubkey must be %d bytes, got %d",
			btcec.PubKeyBytesLenCompressed, len(b),
		)
	}
	if _, err := btcec.ParsePubKey(b); err != nil {
		return encodingf("issuer_pubkey: %v", err)
	}
	// Uppercase hex decodes fine but would change the contract hash for the
	// same key.
	if strings.ToLower(pubkey) != pubkey {
		return encodingf("issuer_pubkey must be lowercase hex")
	}
	return nil
}

func stringField(obj map[string]interface{}, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", invalidf("missing field %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidf("field %s must be a string, got %T", key, v)
	}
	return s, nil
}

// integerField returns the value of an integer field. Floats are rejected
// even when integral since they serialize differently.
func integerField(obj map[string]interface{}, key string) (int64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, invalidf("missing field %s", key)
	}

	switch n := v.(type) {
	case json.Number:
		if strings.ContainsAny(string(n), ".eE") {
			return 0, invalidf("field %s must be an integer, got %s", key, n)
		}
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return 0, invalidf("field %s: %v", key, err)
		}
		return i, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintField(key, uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintField(key, n)
	default:
		return 0, invalidf("field %s must be an integer, got %T", key, v)
	}
}

func uintField(key string, n uint64) (int64, error) {
	if n > 1<<63-1 {
		return 0, invalidf("field %s is out of range", key)
	}
	return int64(n), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
