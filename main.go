package main

import "github.com/Norgate-AV/andromeda/cmd"

func main() {
	cmd.Execute()
}
