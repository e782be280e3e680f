// Command bimapctl runs command scripts against an ordered bidirectional map
// of strings.
//
//	bimapctl [--config FILE] [--seed N] [--left-order numeric] script.txt
//
// Without script arguments the script is read from standard input.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, flagsErr.Message)
		os.Exit(0)
	}
	logrus.WithError(err).Fatal("bimapctl failed")
}
