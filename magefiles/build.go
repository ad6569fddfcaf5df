//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads and tidies the module dependencies.
func (Build) Deps() error {
	return goTidy()
}

// Compiles every engine package.
func (Build) Engine() error {
	mg.Deps(Build.Deps)
	_, err := executeCmd("go", withArgs("build", "./engine/..."), withStream())
	return err
}

// Builds the testbed binary into bin/.
func (Build) Testbed() error {
	mg.Deps(Build.Deps)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/testbed", "."), withStream())
	return err
}
