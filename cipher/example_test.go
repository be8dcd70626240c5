package cipher_test

import (
	"fmt"

	"github.com/katalvlaran/trifid/cipher"
	"github.com/katalvlaran/trifid/cube"
)

// ExampleDecrypt encrypts and decrypts the reference message with key "KEY".
func ExampleDecrypt() {
	c, err := cube.Build(cube.MustParseAlphabet(cube.DefaultAlphabet), "KEY")
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	ct, _ := cipher.Encrypt("HELLOWORLD", c, cipher.DefaultPeriod)
	pt, _ := cipher.Decrypt(ct, c, cipher.DefaultPeriod)
	fmt.Println(ct)
	fmt.Println(pt)
	// Output:
	// LYADEPLOCO
	// HELLOWORLD
}
