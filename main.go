package main

import "github.com/nikogura/resume-regen/cmd"

func main() {
	cmd.Execute()
}
