package main

import "github.com/lindqvst/hourglass/cmd"

func main() {
	cmd.Execute()
}
