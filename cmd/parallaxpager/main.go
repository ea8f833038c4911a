// Command parallaxpager runs scripted and interactive sessions of the
// two-axis pager on the in-memory host.
package main

import (
	"os"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
