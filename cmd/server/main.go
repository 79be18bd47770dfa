package main

import "github.com/Togather-Foundation/beeps/cmd/server/cmd"

func main() {
	cmd.Execute()
}
