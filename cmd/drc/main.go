package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: drc check [flags] <diagram.json>")
	}

	switch os.Args[1] {
	case "check":
		RunCheck(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
