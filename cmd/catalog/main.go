package main

import "catalogUI/internal/cli"

func main() {
	cli.Execute()
}
