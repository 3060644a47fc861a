package main

import (
	"context"

	"github.com/Project-Sylos/Mimic/internal/cli"
)

func main() {
	err := cli.NewRootCommand().ExecuteContext(context.Background())
	cli.ExitOnErr(err)
}
