// main is the entry point for the teampulse CLI.
package main

import (
	"teampulse/cmd"
	"teampulse/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("running teampulse", err)
	}
}
