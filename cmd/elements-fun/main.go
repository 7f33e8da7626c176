// Command elements-fun computes contract hashes, asset ids and SLIP-21/77
// keys from the command line.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

const defaultLogLevel = "warn"

type globalOptions struct {
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
}

var opts = globalOptions{
	DebugLevel: defaultLogLevel,
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{
			"contracthash", "Compute the hash of an issuance contract",
			"Reads a JSON contract from FILE, or stdin when FILE is '-', " +
				"and prints its hash in reversed byte order.",
			&contractHashCommand{},
		},
		{
			"slip21", "Derive a SLIP-21 node",
			"Derives the node found by walking the given labels from the " +
				"master node of the seed.",
			&slip21Command{},
		},
		{
			"blindingkey", "Derive a SLIP-77 blinding key",
			"Derives the blinding key pair of the output locked by script.",
			&blindingKeyCommand{},
		},
		{
			"assetid", "Compute the ids of an issued asset",
			"Computes entropy, asset id and reissuance token id of an " +
				"issuance spending the given prevout.",
			&assetIDCommand{},
		},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
