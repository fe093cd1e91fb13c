package main

import "panic-alert-backend/cmd"

func main() {
	cmd.Run()
}
