package main

import "pyclip/cmd"

func main() {
	cmd.Execute()
}
