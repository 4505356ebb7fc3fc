package main

import (
	"github.com/absrenew/storefront/cmd"
)

func main() {
	cmd.Start()
}
