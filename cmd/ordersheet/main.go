package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/OrderSheet/internal/cli"
	"github.com/JonMunkholm/OrderSheet/internal/core"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	var ue *core.UserError
	if errors.As(err, &ue) {
		fmt.Fprintf(os.Stderr, "Error: %s\n  cause: %v\n", core.FormatUserError(ue.Err), ue.Err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
