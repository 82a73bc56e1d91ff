// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Aumiao.
//
// Usage:
//
//	go run . [command] [flags]
//	./aumiao [command] [flags]
//
// Without a command it prints the command listing. See --help for options.
package main

import (
	"os"

	"github.com/aumiao/aumiao/ui/cli"
)

func main() {
	os.Exit(cli.Execute())
}
