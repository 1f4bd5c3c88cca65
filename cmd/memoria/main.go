// Command memoria is a personal knowledge assistant: it ingests local
// documents into a vector collection and answers questions grounded in
// them.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/memoria-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
