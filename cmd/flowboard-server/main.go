package main

import "github.com/existflow/flowboard/internal/cli"

func main() {
	cli.Execute()
}
