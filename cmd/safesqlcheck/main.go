package main

import (
	"os"

	"github.com/vippsas/safesql/cmd/safesqlcheck/checkcmd"
)

func main() {
	if err := checkcmd.Execute(); err != nil {
		os.Exit(1)
	}
}
