// Command modemctl encodes messages into modem audio and decodes them back.
//
// Usage:
//
//	modemctl [--profile name|file.yaml] [--log-level level] command [flags]
//
// Examples:
//
//	modemctl encode --message "hello" --out hello.wav
//	modemctl decode --in hello.wav
//	modemctl --profile robust roundtrip --message "hello" --noise 0.3
//	modemctl info
//	modemctl beacon --id 42 --ts 1000 --out b0.wav
//	modemctl track b0.wav b1.wav b2.wav
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
