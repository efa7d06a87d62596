package main

import (
	"fmt"
	"os"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/cli"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/config"
)

func main() {
	if err := cli.NewRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
