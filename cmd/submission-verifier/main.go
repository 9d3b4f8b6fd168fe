package main

import "github.com/pqckit/cert-submission/cmd/submission-verifier/cmd"

func main() {
	cmd.Execute()
}
