// Command bmi calculates, records and charts body-mass-index values.
package main

import (
	"context"
	"os"
)

func main() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
