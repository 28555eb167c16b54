package main

import "mtuwatcher/internal/cli"

func main() {
	cli.Execute()
}
