package slip21

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"github.com/vulpemventures/go-elements-fun/internal/bufferutil"
)

const (
	// NodeSize is the size in bytes of a serialized Node.
	NodeSize = 64
	// KeySize is the size in bytes of both the key and the chain code of a
	// Node.
	KeySize = 32
)

var (
	// ErrEmptySeed is returned when deriving a master node from a zero
	// length seed.
	ErrEmptySeed = errors.New("seed must not be empty")
	// ErrEncoding is returned for caller-supplied bytes of unexpected
	// length or format.
	ErrEncoding = errors.New("invalid encoding")

	masterDomain = []byte("Symmetric key seed")
	labelPrefix  = byte(0)
)

// Node is a node of the SLIP-21 tree.
type Node [NodeSize]byte

// NewMasterNode returns the root node of the tree generated by seed.
func NewMasterNode(seed []byte) (*Node, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}

	mac := hmac.New(sha512.New, masterDomain)
	mac.Write(seed)

	return nodeFromMac(mac.Sum(nil)), nil
}

// NodeFromBytes parses a serialized node.
func NodeFromBytes(b []byte) (*Node, error) {
	if len(b) != NodeSize {
		return nil, fmt.Errorf(
			"%w: node must be %d bytes, got %d", ErrEncoding, NodeSize, len(b),
		)
	}

	var n Node
	copy(n[:], b)
	return &n, nil
}

// Derive returns the child of n identified by label.
func (n *Node) Derive(label []byte) *Node {
	chainCode := n.ChainCode()
	defer bufferutil.Wipe(chainCode)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write([]byte{labelPrefix})
	mac.Write(label)

	return nodeFromMac(mac.Sum(nil))
}

// DerivePath derives the node found by walking path from the master node
// of seed. An empty path returns the master node.
func DerivePath(seed []byte, path Path) (*Node, error) {
	node, err := NewMasterNode(seed)
	if err != nil {
		return nil, err
	}

	for _, label := range path {
		child := node.Derive(label)
		node.Zero()
		node = child
	}

	return node, nil
}

// Key returns a copy of the key of the node.
func (n *Node) Key() []byte {
	key := make([]byte, KeySize)
	copy(key, n[KeySize:])
	return key
}

// ChainCode returns a copy of the chain code of the node.
func (n *Node) ChainCode() []byte {
	chainCode := make([]byte, KeySize)
	copy(chainCode, n[:KeySize])
	return chainCode
}

// Bytes returns a copy of the serialized node.
func (n *Node) Bytes() []byte {
	b := make([]byte, NodeSize)
	copy(b, n[:])
	return b
}

// Zero wipes the node.
func (n *Node) Zero() {
	bufferutil.Wipe(n[:])
}

func nodeFromMac(sum []byte) *Node {
	var n Node
	copy(n[:], sum)
	bufferutil.Wipe(sum)
	return &n
}

// Path is an ordered list of labels, starting below the master node.
type Path [][]byte

// NewPath returns the Path made of the given string labels.
func NewPath(labels ...string) Path {
	path := make(Path, 0, len(labels))
	for _, l := range labels {
		path = append(path, []byte(l))
	}
	return path
}

// Child returns a new path extending p with label. p is left untouched.
func (p Path) Child(label []byte) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, label)
}

// String returns a human readable form of the path, quoting every label.
func (p Path) String() string {
	labels := make([]string, 0, len(p)+1)
	labels = append(labels, "m")
	for _, l := range p {
		labels = append(labels, fmt.Sprintf("%q", l))
	}
	return strings.Join(labels, "/")
}
