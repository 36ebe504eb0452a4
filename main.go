// Package main is the entry point for the gentest CLI.
package main

import "github.com/steverpalmer/GenericTesting/cmd"

func main() {
	cmd.Execute()
}
