package main

import "github.com/Tyson-Skiba/codegen-apollo-suspense/cli"

func main() {
	cli.Execute()
}
