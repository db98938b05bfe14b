package main

import "github.com/sambabib/webcompat/cmd"

func main() {
	cmd.Execute()
}
