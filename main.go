package main

import "github.com/SafeMPC/onramp-service/cmd"

func main() {
	cmd.Execute()
}
