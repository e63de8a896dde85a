package main

import "github.com/mcoot/whoosh/internal/cli"

func main() {
	cli.Execute()
}
