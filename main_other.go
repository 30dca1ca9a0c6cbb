//go:build !windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintf(os.Stderr, "%s v%s requires Windows\n", appName, appVersion)
	os.Exit(1)
}
