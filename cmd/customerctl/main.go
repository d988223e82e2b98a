package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-customer-directory/cmd/customerctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
