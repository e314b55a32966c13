package main

import "github.com/naka-gawa/github-issue-report/cmd"

func main() {
	cmd.Execute()
}
