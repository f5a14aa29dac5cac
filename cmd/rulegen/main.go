package main

import (
	"fmt"
	"os"

	"github.com/altiumtools/rulegen/pkg/style"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.NewRenderer().RenderError(err))
		os.Exit(1)
	}
}
