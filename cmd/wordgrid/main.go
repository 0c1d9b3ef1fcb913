// Command wordgrid serves next-word candidates for a grid-based AAC
// keyboard over HTTP or a msgpack stdio transport.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wordgrid:", err)
		os.Exit(1)
	}
}
