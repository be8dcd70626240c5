// SPDX-License-Identifier: MIT

// Package config loads run settings for the trifid CLI.
//
// Sources, lowest to highest precedence:
//
//  1. built-in defaults (search.DefaultConfig and CLI defaults);
//  2. a YAML file (--config, or ./trifid.yaml when present);
//  3. environment variables with the TRIFID_ prefix: TRIFID_KEY_LENGTH=4 sets
//     key_length, a double underscore nests (TRIFID_WEIGHTS__QUADGRAM=2.5);
//  4. command-line flags that were explicitly set (--key-length → key_length).
//
// The merged File is validated and converted into a search.Config.
package config
