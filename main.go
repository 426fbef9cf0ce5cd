package main

import (
	"os"

	"github.com/zxyasa/ai-zhao-tutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
