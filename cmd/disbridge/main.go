package main

import "github.com/gift-interop/disbridge/cmd/disbridge/cmd"

func main() {
	cmd.Execute()
}
