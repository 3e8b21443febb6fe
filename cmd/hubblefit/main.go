package main

import "github.com/pcastellanos/hubblefit/internal/cli"

func main() {
	cli.Execute()
}
