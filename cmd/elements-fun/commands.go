package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/vulpemventures/go-elements-fun/contract"
	"github.com/vulpemventures/go-elements-fun/elementsutil"
	"github.com/vulpemventures/go-elements-fun/internal/bufferutil"
	"github.com/vulpemventures/go-elements-fun/issuance"
	"github.com/vulpemventures/go-elements-fun/slip21"
	"github.com/vulpemventures/go-elements-fun/slip77"
)

var stdout io.Writer = os.Stdout

type contractHashCommand struct {
	NoValidate bool `long:"novalidate" description:"Hash contracts that don't follow the asset registry schema"`
	Canonical  bool `long:"canonical" description:"Also print the canonical serialization"`

	Args struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`
}

func (c *contractHashCommand) Execute(_ []string) error {
	if err := setLogLevels(opts.DebugLevel); err != nil {
		return err
	}

	ctr, err := readContract(c.Args.File)
	if err != nil {
		return err
	}

	hash := ctr.Hash
	if c.NoValidate {
		hash = ctr.CanonicalHash
	}
	h, err := hash()
	if err != nil {
		return err
	}

	if c.Canonical {
		canonical, err := ctr.Canonical()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "canonical: %s\n", canonical)
	}
	fmt.Fprintf(stdout, "contract_hash: %v\n", h)
	return nil
}

type slip21Command struct {
	Seed string `long:"seed" description:"Hex encoded seed" required:"yes"`
}

func (c *slip21Command) Execute(labels []string) error {
	if err := setLogLevels(opts.DebugLevel); err != nil {
		return err
	}

	seed, err := decodeHex("seed", c.Seed)
	if err != nil {
		return err
	}
	defer bufferutil.Wipe(seed)

	path := slip21.NewPath(labels...)
	node, err := slip21.DerivePath(seed, path)
	if err != nil {
		return err
	}
	defer node.Zero()

	log.Debugf("Derived node at %v", path)

	fmt.Fprintf(stdout, "chain_code: %x\n", node.ChainCode())
	fmt.Fprintf(stdout, "key: %x\n", node.Key())
	return nil
}

type blindingKeyCommand struct {
	Seed      string `long:"seed" description:"Hex encoded seed"`
	MasterKey string `long:"masterkey" description:"Hex encoded master blinding key"`
	Script    string `long:"script" description:"Hex encoded output script" required:"yes"`
}

func (c *blindingKeyCommand) Execute(_ []string) error {
	if err := setLogLevels(opts.DebugLevel); err != nil {
		return err
	}

	if (c.Seed == "") == (c.MasterKey == "") {
		return errors.New("exactly one of --seed and --masterkey is required")
	}

	script, err := decodeHex("script", c.Script)
	if err != nil {
		return err
	}

	var s *slip77.Slip77
	if c.Seed != "" {
		seed, err := decodeHex("seed", c.Seed)
		if err != nil {
			return err
		}
		defer bufferutil.Wipe(seed)

		s, err = slip77.FromSeed(seed)
		if err != nil {
			return err
		}
	} else {
		masterKey, err := decodeHex("masterkey", c.MasterKey)
		if err != nil {
			return err
		}
		defer bufferutil.Wipe(masterKey)

		s, err = slip77.FromMasterKey(masterKey)
		if err != nil {
			return err
		}
	}
	defer s.Zero()

	key, err := s.DeriveBlindingKey(script)
	if err != nil {
		return err
	}
	defer key.Zero()

	fmt.Fprintf(stdout, "master_blinding_key: %x\n", s.MasterKey)
	fmt.Fprintf(stdout, "blinding_private_key: %x\n", key[:])
	fmt.Fprintf(stdout, "blinding_public_key: %x\n", key.PubKey().SerializeCompressed())
	return nil
}

type assetIDCommand struct {
	TxID         string `long:"txid" description:"Id of the transaction of the spent prevout" required:"yes"`
	Vout         uint32 `long:"vout" description:"Output index of the spent prevout"`
	Contract     string `long:"contract" description:"JSON contract file, '-' for stdin"`
	ContractHash string `long:"contracthash" description:"Contract hash, in reversed byte order"`
}

func (c *assetIDCommand) Execute(_ []string) error {
	if err := setLogLevels(opts.DebugLevel); err != nil {
		return err
	}

	if c.Contract != "" && c.ContractHash != "" {
		return errors.New("--contract and --contracthash are mutually exclusive")
	}

	txHash, err := chainhash.NewHashFromStr(c.TxID)
	if err != nil {
		return fmt.Errorf("invalid txid: %w", err)
	}

	contractHash := contract.ZeroHash
	switch {
	case c.Contract != "":
		ctr, err := readContract(c.Contract)
		if err != nil {
			return err
		}
		if contractHash, err = ctr.Hash(); err != nil {
			return err
		}

	case c.ContractHash != "":
		h, err := contract.NewHashFromStr(c.ContractHash)
		if err != nil {
			return err
		}
		contractHash = *h
	}

	entropy := issuance.ComputeEntropy(*wire.NewOutPoint(txHash, c.Vout), contractHash)
	asset := issuance.AssetID(entropy)
	token := issuance.ReissuanceTokenID(entropy, false)
	confToken := issuance.ReissuanceTokenID(entropy, true)

	fmt.Fprintf(stdout, "contract_hash: %v\n", contractHash)
	fmt.Fprintf(stdout, "entropy: %s\n", elementsutil.TxIDFromBytes(entropy[:]))
	fmt.Fprintf(stdout, "asset: %s\n", elementsutil.TxIDFromBytes(asset[:]))
	fmt.Fprintf(stdout, "token: %s\n", elementsutil.TxIDFromBytes(token[:]))
	fmt.Fprintf(stdout, "confidential_token: %s\n", elementsutil.TxIDFromBytes(confToken[:]))
	return nil
}

func readContract(file string) (contract.Contract, error) {
	var (
		raw []byte
		err error
	)
	if file == "" || file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}

	return contract.Parse(raw)
}

func decodeHex(name, str string) ([]byte, error) {
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}
