package main

import "pricemachine/cmd"

func main() {
	cmd.Execute()
}
