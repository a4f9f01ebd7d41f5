package main

import "carf-backend/cli"

func main() {
	cli.Execute()
}
