package main

import "slidergraph/internal/cli"

func main() {
	cli.Execute()
}
