package main

import "github.com/ManuelZ/Finite-Element-Analysis/cmd"

func main() {
	cmd.Execute()
}
