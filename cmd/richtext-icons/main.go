package main

import cmd "github.com/rohmanhakim/richtext-icons/internal/cli"

func main() {
	cmd.Execute()
}
