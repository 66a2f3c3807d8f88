package main

import (
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil && !isSilent(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}
