package main

import "gamelib/cmd/client/cmd"

func main() {
	cmd.Execute()
}
