package main

import "github.com/iksnae/notion-standup/cmd"

func main() {
	cmd.Execute()
}
