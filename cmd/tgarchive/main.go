package main

import "github.com/custodia-labs/tgarchive/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
