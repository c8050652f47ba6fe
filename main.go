package main

import "github.com/filefrog/n7/cmd"

func main() {
	cmd.Execute()
}
