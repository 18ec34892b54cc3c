package main

import "github.com/byterings/gitidm/cmd"

func main() {
	cmd.Execute()
}
