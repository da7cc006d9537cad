package main

import "github.com/gaurav-prasanna/chatpipe/cmd"

func main() {
	cmd.Execute()
}
