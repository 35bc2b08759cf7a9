// Command scoreboard builds the MagChess scoreboard site.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
