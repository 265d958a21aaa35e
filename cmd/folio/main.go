// folio is a terminal front end for the folio preference and speech services
package main

import (
	"os"

	"github.com/iiroan/folio/cmd/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
