package main

import "github.com/cristianadrielbraun/qrframe/internal/cmd"

func main() {
	cmd.Execute()
}
