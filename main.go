package main

import "github.com/tristendillon/gsqa/cmd"

func main() {
	cmd.Execute()
}
