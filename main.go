package main

import "github.com/russcam/elastic/cmd"

func main() {
	cmd.Execute()
}
