// One-off: go run scripts/genhash.go [-cost N] password
// Prints a digest in the same format the API stores, for seeding users by hand.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/birat04/Notionize/internal/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost N] password")
		os.Exit(2)
	}
	digest, err := auth.NewBcryptHasher(*cost).Hash(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(digest)
}
