package main

import "github.com/deploymenttheory/go-drivecap/cmd"

func main() {
	cmd.Execute()
}
