package main

import "github.com/quizpoker/quizpoker/internal/cli"

func main() {
	cli.Execute()
}
