package main

import "robocamp/cmd"

func main() {
	cmd.Execute()
}
