package main

import "github.com/ufz-vislab/EmiReader/cmd"

func main() {
	cmd.Execute()
}
