package main

import "github.com/lukmanhakim/user-portal/cmd"

func main() {
	cmd.Execute()
}
