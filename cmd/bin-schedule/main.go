package main

import "github.com/pfrederiksen/bin-schedule/internal/cli"

func main() {
	cli.Execute()
}
