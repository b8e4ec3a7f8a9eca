package main

import "github.com/MeKo-Tech/noisemap/internal/cmd"

func main() {
	cmd.Execute()
}
