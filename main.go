package main

import "github.com/gnames/gnspace/cmd"

func main() {
	cmd.Execute()
}
