package main

import "github.com/pqckit/cert-submission/cmd/submission-packager/cmd"

func main() {
	cmd.Execute()
}
