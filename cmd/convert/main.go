package main

import "github.com/couchcryptid/unit-converter-service/internal/cli"

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date
	cli.Execute(cli.NewRootCommand())
}
