// Command hdsctl is the operator tool for inspecting values stored by the
// HDS keeper: it encrypts and decrypts single field values, classifies and
// repairs malformed ciphertexts, computes search pseudonyms and issues test
// tokens.
package main

import (
	"fmt"
	"os"
)

var (
	buildVersion = "N/A"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
