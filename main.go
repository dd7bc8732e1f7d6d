package main

import "github.com/notargets/foamcase/cmd"

func main() {
	cmd.Execute()
}
