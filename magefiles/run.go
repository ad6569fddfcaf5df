//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and starts the testbed. RAY_CONFIG overrides the config file.
func (Run) Testbed() error {
	mg.Deps(Build.Testbed)
	config := os.Getenv("RAY_CONFIG")
	if config == "" {
		config = "config.toml"
	}
	fmt.Println("Run testbed...")
	_, err := executeCmd("bin/testbed", withArgs("-config", config), withStream())
	return err
}
