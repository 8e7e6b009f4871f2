package main

import "github.com/mertens-software-gmbh/todo/cmd"

func main() {
	cmd.Execute()
}
