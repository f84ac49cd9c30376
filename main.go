package main

import "lakecircle/cmd"

func main() {
	cmd.Execute()
}
