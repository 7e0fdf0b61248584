package main

import "github.com/ksunext/docsite/cmd"

func main() {
	cmd.Execute()
}
