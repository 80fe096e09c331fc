package main

import (
	cmd "github.com/kerbaras/storyline/cmd/storyline"
)

func main() {
	cmd.Execute()
}
