package main

import "github.com/kairohq/internexplore_backend/cmd"

func main() {
	cmd.Execute()
}
