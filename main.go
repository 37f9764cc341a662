package main

import "github.com/judismar/monkeymap/cmd"

func main() {
	cmd.Execute()
}
