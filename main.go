package main

import "github.com/dotcommander/lifeindex/cmd"

func main() {
	cmd.Execute()
}
