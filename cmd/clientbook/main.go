// Package main provides the clientbook CLI.
package main

import "github.com/mesh-intelligence/clientbook/internal/cli"

func main() {
	cli.Execute()
}
