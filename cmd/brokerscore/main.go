// Command brokerscore scores brokerage mystery-shopper evaluations and
// serves the ranked results over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
