package main

import (
	"coolfinds/cmd/cmd"
)

func main() {
	cmd.Execute()
}
