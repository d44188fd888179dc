package main

import "github.com/forPelevin/ytsum/internal/cli"

func main() {
	cli.Main()
}
