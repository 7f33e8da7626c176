/*
Package contract computes the hash that binds an Elements asset issuance to
its Ricardian contract.

The contract hash is the SHA-256 of the canonical JSON serialization of the
contract, the same one used by the Liquid asset registry:

	json.dumps(contract, sort_keys=True, separators=(',', ':'))

Object keys are sorted by code point at every level, no whitespace is
emitted, every non-ASCII character is escaped as \uXXXX and numbers keep the
integer/float distinction of the source document. Documents that can't be
serialized unambiguously (duplicate keys, keys that collide under NFC
normalization, NaN or infinite numbers, invalid UTF-8) are rejected with
ErrInvalidContract rather than repaired.

Like transaction ids, hashes are displayed in reversed byte order:

	c, err := contract.Parse(raw)
	if err != nil {
		return err
	}
	h, err := c.Hash()
	if err != nil {
		return err
	}
	fmt.Println(h) // d5c4363ee9cf2a43...
*/
package contract
