package main

import "LedgerLens/internal/cli"

func main() {
	cli.Execute()
}
