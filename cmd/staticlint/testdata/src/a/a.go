package main

import (
	"fmt"
	"os"
)

func main() {
	defer fmt.Println("cleanup")

	if len(os.Args) > 2 {
		os.Exit(2) // want "avoid direct os.Exit call in main function of main package"
	}

	func() {
		os.Exit(1) // want "avoid direct os.Exit call in main function of main package"
	}()

	exit := os.Exit
	exit(3)
}

func fail() {
	os.Exit(1)
}
