package main

import "github.com/mercata-dev/storefront/internal/cmd"

func main() {
	cmd.Execute()
}
