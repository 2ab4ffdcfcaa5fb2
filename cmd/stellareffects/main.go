package main

import "stellareffects/internal/cli"

func main() {
	cli.Execute()
}
