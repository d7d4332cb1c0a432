package main

import "hedgebacktest/cmd/hedge/commands"

func main() {
	commands.Execute()
}
