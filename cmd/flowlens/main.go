package main

import (
	"github.com/joho/godotenv"

	"github.com/arunjmoorthy/flowlens/internal/cli"
)

func main() {
	// Best-effort: credentials usually live in a local .env file.
	_ = godotenv.Load()

	cli.Execute()
}
