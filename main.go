// Package main is the entry point for the fortress CLI, the command-line
// session client for the Fortress panel.
package main

import (
	"github.com/ryo-clouds/fortress-panel-sub001/cmd"
)

func main() {
	cmd.Execute()
}
