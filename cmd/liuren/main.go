// Package main provides the liuren CLI.
package main

import "github.com/mesh-intelligence/liuren/internal/cli"

func main() {
	cli.Execute()
}
