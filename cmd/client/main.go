package main

import "github.com/Diana2886/websockets-ui/internal/cli"

func main() {
	cli.Execute()
}
