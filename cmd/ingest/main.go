// cmd/ingest/main.go
package main

import "os"

func main() {
	os.Exit(Execute())
}
