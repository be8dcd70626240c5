// SPDX-License-Identifier: MIT

// Command trifid encrypts, decrypts and brute-forces Trifid ciphertexts.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
