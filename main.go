package main

import "github.com/bgraf/figures/cmd"

func main() {
	cmd.Execute()
}
