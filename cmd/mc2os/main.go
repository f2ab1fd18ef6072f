package main

import (
	"fmt"
	"os"
)

func main() {
	// mc2os reads the configuration, executes the configured query on
	// MaxCompute and lands the result on the configured sink, either a
	// MaxCompute table or an object store bucket as parquet.
	// It also handles graceful shutdown by listening to os signals.
	// It returns error if any.
	if err := mc2os(); err != nil {
		fmt.Printf("error: %+v\n", err)
		os.Exit(1)
	}
}
