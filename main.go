package main

import (
	"github.com/joho/godotenv"

	"saltlens/cmd"
)

func main() {
	// Optional .env provides SALTLENS_* overrides; absence is fine.
	_ = godotenv.Load()
	cmd.Execute()
}
