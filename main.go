package main

import "github.com/authdemo/apiserver/cmd"

func main() {
	cmd.Execute()
}
