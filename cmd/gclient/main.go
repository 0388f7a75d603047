package main

import (
	"errors"
	"os"

	"github.com/gclient-go/gclient/cmd/gclient/cmd"
	"github.com/gclient-go/gclient/pkg/gclient"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var hookErr *gclient.HookError
		if errors.As(err, &hookErr) {
			os.Exit(hookErr.Status)
		}
		os.Exit(1)
	}
}
