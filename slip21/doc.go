/*
Package slip21 implements hierarchical derivation of symmetric keys as
described by SLIP-0021.

A Node is the 64 byte output of HMAC-SHA512. Its first half is the chain code
used to derive children, its second half is the key of the node:

	m     = HMAC-SHA512(key = "Symmetric key seed", msg = seed)
	child = HMAC-SHA512(key = parent[0:32], msg = 0x00 || label)

Labels are arbitrary byte strings. Nodes are never cached: every derivation
is recomputed from the seed and the caller owns, and should Zero, every Node
it receives.
*/
package slip21
