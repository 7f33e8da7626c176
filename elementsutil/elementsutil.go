package elementsutil

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// ValueToBytes method converts Satoshi value to Elements value
func ValueToBytes(val uint64) ([]byte, error) {
	unconfPrefix := byte(1)
	res := make([]byte, 9)
	res[0] = unconfPrefix
	binary.BigEndian.PutUint64(res[1:], val)
	return res, nil
}

// ValueFromBytes method converts Elements value to Satoshi value
func ValueFromBytes(val []byte) (uint64, error) {
	if !ValidElementValue(val) {
		if len(val) != 9 {
			return 0, errors.New("invalid elements value length")
		}
		return 0, errors.New("invalid prefix")
	}
	return binary.BigEndian.Uint64(val[1:]), nil
}

func TxIDFromBytes(buffer []byte) string {
	return hex.EncodeToString(ReverseBytes(buffer))
}

func TxIDToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return ReverseBytes(buffer), nil
}

// ReverseBytes returns a copy of the given byte slice with elems in reverse order.
func ReverseBytes(buf []byte) []byte {
	if len(buf) < 1 {
		return buf
	}
	tmp := make([]byte, len(buf))
	copy(tmp, buf)
	for i := len(tmp)/2 - 1; i >= 0; i-- {
		j := len(tmp) - 1 - i
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp
}

func ValidElementValue(val []byte) bool {
	return len(val) == 9 && val[0] == byte(1)
}
