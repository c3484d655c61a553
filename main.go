package main

import "github.com/bidquo/rfq-marketplace/cmd"

func main() {
	cmd.Execute()
}
