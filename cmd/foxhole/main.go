package main

import "github.com/amterp/foxhole/internal/cli"

func main() {
	cli.Run()
}
