package main

import "github.com/pfrederiksen/track-assets/internal/cli"

func main() {
	cli.Execute()
}
