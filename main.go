package main

import "r2ta/cmd"

func main() {
	cmd.Execute()
}
