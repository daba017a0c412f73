package main

import "github.com/pfrederiksen/cga-events/internal/cli"

func main() {
	cli.Execute()
}
