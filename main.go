package main

import (
	"os"

	"github.com/mscp-tools/cnssigen/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
