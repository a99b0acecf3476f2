package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	schemacontract "github.com/schemacontract/schemacontract-go"
)

func main() {
	var (
		overridesPath string
		format        string
	)

	flag.StringVar(&overridesPath, "overrides", "", "Path to an overrides JSON file.")
	flag.StringVar(&format, "format", "json", "Output format: json or yaml.")

	flag.Parse()
	args := flag.Args()

	if len(args) != 1 {
		log.Fatal("profile report file required")
	}

	profileData, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}
	profile, err := schemacontract.DecodeJSON(profileData)
	if err != nil {
		log.Fatalf("decoding profile report: %s", err)
	}

	var overrides any
	if overridesPath != "" {
		overrideData, err := os.ReadFile(overridesPath)
		if err != nil {
			log.Fatal(err)
		}
		overrides, err = schemacontract.DecodeJSON(overrideData)
		if err != nil {
			log.Fatalf("decoding overrides: %s", err)
		}
	}

	schema, err := schemacontract.FromProfile(profile, overrides)
	if err != nil {
		log.Fatal(err)
	}

	var out string
	switch format {
	case "json":
		if out, err = schemacontract.ToJSON(schema); err == nil {
			out += "\n"
		}
	case "yaml":
		out, err = schemacontract.ToYAML(schema)
	default:
		log.Fatalf("unknown format: %s", format)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(out)
}
