package main

import "github.com/theirongolddev/revcalc/cmd"

func main() {
	cmd.Execute()
}
