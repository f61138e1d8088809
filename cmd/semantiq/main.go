package main

import "github.com/so-keyldzn/semantiq/internal/cli"

func main() {
	cli.Execute()
}
