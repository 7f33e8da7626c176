package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const hexDigits = "0123456789abcdef"

var numberRegexp = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Canonical returns the canonical serialization of c, the preimage of its
// hash. It doesn't check c against the registry schema, see Validate.
func (c Contract) Canonical() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeObject(&buf, c, "$"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v interface{}, path string) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case string:
		return encodeString(buf, v, path)
	case json.Number:
		return encodeNumber(buf, v, path)
	case int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case int8:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case int16:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case uint8:
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case uint16:
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(v, 10))
	case float64:
		return encodeFloat(buf, v, path)
	case Contract:
		return encodeObject(buf, v, path)
	case map[string]interface{}:
		return encodeObject(buf, v, path)
	case []interface{}:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return invalidf("unsupported type %T at %s", v, path)
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, obj map[string]interface{}, path string) error {
	keys := make([]string, 0, len(obj))
	normalized := make(map[string]string, len(obj))
	for k := range obj {
		if !utf8.ValidString(k) {
			return invalidf("key %q at %s is not valid UTF-8", k, path)
		}
		nfc := norm.NFC.String(k)
		if other, ok := normalized[nfc]; ok {
			return invalidf(
				"keys %q and %q at %s collide under NFC normalization",
				other, k, path,
			)
		}
		normalized[nfc] = k
		keys = append(keys, k)
	}
	// Byte order of valid UTF-8 is code point order.
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k, path); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeValue(buf, obj[k], path+"."+k); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// encodeString escapes everything outside printable ASCII.
func encodeString(buf *bytes.Buffer, s string, path string) error {
	if !utf8.ValidString(s) {
		return invalidf("string at %s is not valid UTF-8", path)
	}

	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r >= 0x20 && r <= 0x7e {
				buf.WriteByte(byte(r))
				continue
			}
			if r > 0xffff {
				hi, lo := utf16.EncodeRune(r)
				writeUnicodeEscape(buf, hi)
				writeUnicodeEscape(buf, lo)
				continue
			}
			writeUnicodeEscape(buf, r)
		}
	}
	buf.WriteByte('"')
	return nil
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[(r>>12)&0xf])
	buf.WriteByte(hexDigits[(r>>8)&0xf])
	buf.WriteByte(hexDigits[(r>>4)&0xf])
	buf.WriteByte(hexDigits[r&0xf])
}

// encodeNumber keeps integer literals as integers of any size and turns
// every other literal into a float.
func encodeNumber(buf *bytes.Buffer, n json.Number, path string) error {
	s := string(n)
	if !numberRegexp.MatchString(s) {
		return invalidf("malformed number %q at %s", s, path)
	}

	if !strings.ContainsAny(s, ".eE") {
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return invalidf("malformed integer %q at %s", s, path)
		}
		buf.WriteString(i.String())
		return nil
	}

	// Out of range literals parse to an infinity, rejected below. Underflow
	// rounds to zero.
	f, _ := strconv.ParseFloat(s, 64)
	return encodeFloat(buf, f, path)
}

// encodeFloat writes the shortest representation of f that round trips,
// using positional notation for decimal exponents in [-4, 16) and
// scientific notation otherwise. Integral values keep a ".0" suffix.
func encodeFloat(buf *bytes.Buffer, f float64, path string) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return invalidf("number at %s is not finite", path)
	}

	if f == 0 {
		if math.Signbit(f) {
			buf.WriteString("-0.0")
		} else {
			buf.WriteString("0.0")
		}
		return nil
	}

	// d.ddddde±xx
	s := strconv.FormatFloat(f, 'e', -1, 64)
	if s[0] == '-' {
		buf.WriteByte('-')
		s = s[1:]
	}
	mantissa, exponent, _ := strings.Cut(s, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return invalidf("number at %s can't be formatted: %v", path, err)
	}

	// Position of the decimal point relative to the first digit.
	decpt := exp + 1

	switch {
	case decpt <= -4 || decpt > 16:
		buf.WriteByte(digits[0])
		if len(digits) > 1 {
			buf.WriteByte('.')
			buf.WriteString(digits[1:])
		}
		fmt.Fprintf(buf, "e%+03d", decpt-1)

	case decpt <= 0:
		buf.WriteString("0.")
		buf.WriteString(strings.Repeat("0", -decpt))
		buf.WriteString(digits)

	case decpt < len(digits):
		buf.WriteString(digits[:decpt])
		buf.WriteByte('.')
		buf.WriteString(digits[decpt:])

	default:
		buf.WriteString(digits)
		buf.WriteString(strings.Repeat("0", decpt-len(digits)))
		buf.WriteString(".0")
	}

	return nil
}
