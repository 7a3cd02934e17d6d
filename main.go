package main

import "ponyget/cmd"

func main() {
	cmd.Execute()
}
