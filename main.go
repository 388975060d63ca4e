package main

import "github.com/brogergvhs/storyd/cmd"

func main() {
	cmd.Execute()
}
