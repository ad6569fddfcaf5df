//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the engine tests. None of them need a window or a GPU.
func (Test) Engine() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withDir("engine"), withStream())
	return err
}

// Runs the engine tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withDir("engine"), withStream())
	return err
}
