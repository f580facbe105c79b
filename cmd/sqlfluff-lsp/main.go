package main

import (
	"fmt"
	"os"

	"github.com/oboki/sqlfluff-formatter/internal/config"
	"github.com/oboki/sqlfluff-formatter/internal/lsp"
)

var version = "dev"

func main() {
	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := lsp.NewServer(settings, version)
	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
