package main

import (
	"github.com/whist-team/whist-server-go/internal/cli"
)

func main() {
	cli.Execute()
}
