package main

import "github.com/samsaffron/mdir/cmd"

func main() {
	cmd.Execute()
}
