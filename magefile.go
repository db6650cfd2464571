//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles the mealie-translate binary.
func Build() error {
	fmt.Println("Building mealie-translate...")
	return sh.RunV("go", "build", "-o", "mealie-translate", "./cmd/mealie-translate")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the whole module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", "./cmd/mealie-translate")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("mealie-translate")
}
