package main

import "github.com/rskv-p/treekit/cmd"

func main() {
	cmd.Execute()
}
