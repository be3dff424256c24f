package main

import "github.com/aalvaropc/usbsim/internal/cli"

func main() {
	cli.Execute()
}
