package main

import "github.com/xvierd/calm-cli/cmd"

func main() {
	cmd.Execute()
}
