package main

import "breachvault/cmd/server/cmd"

func main() {
	cmd.Execute()
}
