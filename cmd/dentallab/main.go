package main

import "github.com/Apurer/dentallab-tracker/internal/cli"

func main() {
	cli.Execute()
}
