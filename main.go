package main

import "fincalc/internal/cli"

func main() {
	cli.Execute()
}
