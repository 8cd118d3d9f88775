package main

import (
	"github.com/vitthal2611/goal-tracker/internal/cmd"
)

func main() {
	cmd.Execute()
}
