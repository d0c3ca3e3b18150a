package main

import "github.com/bnema/dosctl/cmd"

func main() {
	cmd.Execute()
}
