package main

import "event-platform/cmd/server/cmd"

func main() {
	cmd.Execute()
}
