package main

import "github.com/inkwell-tui/inkwell/cmd"

func main() {
	cmd.Execute()
}
