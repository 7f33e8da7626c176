package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Contract is a JSON object describing an issued asset. Values are nil,
// bool, string, json.Number, any Go integer, float64, []interface{},
// map[string]interface{} or Contract.
//
// A Contract has no key order: its canonical serialization sorts keys, so
// any two Contracts holding the same fields hash the same.
type Contract map[string]interface{}

// IssuanceEntity defines one of the fields of the issuance contract
type IssuanceEntity struct {
	Domain string `json:"domain"`
}

// IssuanceContract defines the structure of the Ricardian contract of the issuance
type IssuanceContract struct {
	Name      string         `json:"name"`
	Ticker    string         `json:"ticker"`
	Version   uint           `json:"version"`
	Precision uint           `json:"precision"`
	PubKey    string         `json:"issuer_pubkey"`
	Entity    IssuanceEntity `json:"entity"`
}

// Contract returns the generic form of the contract. An empty ticker is
// left out.
func (ic *IssuanceContract) Contract() Contract {
	c := Contract{
		"name":          ic.Name,
		"version":       ic.Version,
		"precision":     ic.Precision,
		"issuer_pubkey": ic.PubKey,
		"entity": map[string]interface{}{
			"domain": ic.Entity.Domain,
		},
	}
	if ic.Ticker != "" {
		c["ticker"] = ic.Ticker
	}
	return c
}

// Hash returns the contract hash of ic.
func (ic *IssuanceContract) Hash() (Hash, error) {
	return ic.Contract().Hash()
}

// Parse decodes a JSON object into a Contract. Unlike encoding/json it
// rejects duplicate keys, invalid UTF-8 and trailing data, and keeps numbers
// as json.Number so that their integer or float nature survives
// canonicalization.
func Parse(raw []byte) (Contract, error) {
	if !utf8.Valid(raw) {
		return nil, invalidf("document is not valid UTF-8")
	}
	if err := checkSurrogateEscapes(raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, invalidf("malformed document: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, invalidf("document must be a JSON object")
	}

	obj, err := parseObject(dec, "$")
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalidf("unexpected data after contract object")
	}

	return Contract(obj), nil
}

func parseObject(dec *json.Decoder, path string) (map[string]interface{}, error) {
	obj := make(map[string]interface{})

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalidf("malformed object at %s: %v", path, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, invalidf("malformed object key at %s", path)
		}
		if _, dup := obj[key]; dup {
			return nil, invalidf("duplicate key %q at %s", key, path)
		}

		val, err := parseValue(dec, path+"."+key)
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, invalidf("malformed object at %s: %v", path, err)
	}

	return obj, nil
}

func parseArray(dec *json.Decoder, path string) ([]interface{}, error) {
	arr := make([]interface{}, 0)

	for dec.More() {
		val, err := parseValue(dec, path+"[]")
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, invalidf("malformed array at %s: %v", path, err)
	}

	return arr, nil
}

func parseValue(dec *json.Decoder, path string) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, invalidf("malformed value at %s: %v", path, err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec, path)
		case '[':
			return parseArray(dec, path)
		}
		return nil, invalidf("unexpected %v at %s", v, path)

	case json.Number, string, bool, nil:
		return v, nil

	default:
		return nil, invalidf("unexpected token %v at %s", v, path)
	}
}

// checkSurrogateEscapes rejects \u escapes of unpaired UTF-16 surrogates,
// which encoding/json silently replaces with U+FFFD. Malformed escapes are
// left to the decoder.
func checkSurrogateEscapes(raw []byte) error {
	inString := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if !inString {
			inString = c == '"'
			continue
		}

		switch c {
		case '"':
			inString = false

		case '\\':
			if i+1 >= len(raw) || raw[i+1] != 'u' {
				i++
				continue
			}
			r, ok := hexRune(raw, i+2)
			if !ok {
				return nil
			}
			i += 5
			if !utf16.IsSurrogate(r) {
				continue
			}
			if r >= 0xdc00 {
				return invalidf("unpaired surrogate escape \\u%04x", r)
			}
			if i+6 >= len(raw) || raw[i+1] != '\\' || raw[i+2] != 'u' {
				return invalidf("unpaired surrogate escape \\u%04x", r)
			}
			lo, ok := hexRune(raw, i+3)
			if !ok || lo < 0xdc00 || lo > 0xdfff {
				return invalidf("unpaired surrogate escape \\u%04x", r)
			}
			i += 6
		}
	}
	return nil
}

func hexRune(raw []byte, start int) (rune, bool) {
	if start+4 > len(raw) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(raw[start:start+4]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
