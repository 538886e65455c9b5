package main

import "github.com/mj1618/a11y-check/cmd"

func main() {
	cmd.Execute()
}
