package main

import "github.com/theirongolddev/spendbook/cmd"

func main() {
	cmd.Execute()
}
