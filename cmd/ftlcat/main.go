package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	sub := os.Args[1]
	args := os.Args[2:]
	var err error
	switch sub {
	case "lint":
		cfg, e := parseLintFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runLint(cfg)
	case "extract":
		cfg, e := parseExtractFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runExtract(cfg)
	case "merge":
		cfg, e := parseMergeFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runMerge(cfg)
	case "export":
		cfg, e := parseExportFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runExport(cfg)
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "ftlcat: unknown subcommand %q\n", sub)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ftlcat: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `ftlcat - catalog CLI for the key = value localization workflow

usage: ftlcat <command> [options] [paths]

commands:
  lint       Parse every catalog under a directory and report defects.
  extract    Discover message keys from Go code; optionally sync into a source catalog.
  merge      Produce translate.<locale>.yaml stub files for translators.
  export     Convert catalogs to go-i18n TOML message files.

Use 'ftlcat <command> -h' for command-specific flags.
`)
}
