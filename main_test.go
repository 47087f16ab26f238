package main

import (
	"flag"
	"reflect"
	"testing"
)

func TestParseArgsInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	n := fs.String("n", "", "")
	remember := fs.Bool("remember", false, "")

	rest := parseArgs(fs, []string{"gmail.com", "-n", "24", "--remember"})

	if !reflect.DeepEqual(rest, []string{"gmail.com"}) {
		t.Errorf("positional = %v", rest)
	}
	if *n != "24" || !*remember {
		t.Errorf("flags not parsed: n=%q remember=%v", *n, *remember)
	}
}

func TestParseArgsFlagsFirst(t *testing.T) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	overwrite := fs.Bool("overwrite", false, "")

	rest := parseArgs(fs, []string{"--overwrite", "a.json", "b.json"})

	if !reflect.DeepEqual(rest, []string{"a.json", "b.json"}) {
		t.Errorf("positional = %v", rest)
	}
	if !*overwrite {
		t.Error("overwrite not set")
	}
}
