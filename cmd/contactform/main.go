// Package main implements the contactform CLI tool.
// It runs the local development server and posts test submissions.
package main

import "github.com/runvoy/contactform/cmd/contactform/cmd"

func main() {
	cmd.Execute()
}
