package main

import "github.com/mossgate/crosslink/cmd"

func main() {
	cmd.Execute()
}
