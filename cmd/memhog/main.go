package main

import "mosn.io/memhog/cmd/memhog/cmd"

func main() {
	cmd.Execute()
}
