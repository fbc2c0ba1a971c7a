package main

import "github.com/skyla-ma/melody-surprise/cmd"

func main() {
	cmd.Execute()
}
