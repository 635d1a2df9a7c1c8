package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/repr"
	"github.com/peterh/liner"

	"github.com/mython-lang/mython/driver"
	"github.com/mython-lang/mython/lexer"
)

func RunFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return driver.RunSource(string(source), os.Stdout)
}

func DumpTokens(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lex, err := lexer.New(f)
	if err != nil {
		return err
	}
	repr.Println(lex.Tokens())
	return nil
}

var history = filepath.Join(xdg.DataHome, "mython", "history")

// RunPrompt reads and executes input interactively. A line ending with a
// colon opens a block that is collected until a blank line closes it;
// anything else runs immediately. Definitions persist between inputs.
func RunPrompt() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	interp := driver.New(os.Stdout)
	var batch []string
	for {
		prompt := "> "
		if len(batch) > 0 {
			prompt = ". "
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		if len(batch) > 0 {
			if strings.TrimSpace(input) != "" {
				batch = append(batch, input)
				continue
			}
			source := strings.Join(batch, "\n") + "\n"
			batch = batch[:0]
			report(interp.Run(source))
			continue
		}

		trimmed := strings.TrimSpace(input)
		switch {
		case trimmed == "":
		case strings.HasSuffix(trimmed, ":"):
			batch = append(batch, input)
		default:
			report(interp.Run(input + "\n"))
		}
	}
}

func report(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
