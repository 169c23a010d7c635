package main

import "github.com/YangQing-Lin/nr-cli/cmd"

func main() {
	cmd.Execute()
}
