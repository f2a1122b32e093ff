package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhrions/ha-public-transports/wizard"
)

// errorMessages renders form error keys for the terminal
var errorMessages = map[string]string{
	wizard.ErrCityNotFound:        "City not found.",
	wizard.ErrInvalidCompany:      "Pick one of the listed companies.",
	wizard.ErrCompanyNotSupported: "This company has no supported real-time API yet.",
	wizard.ErrTokenRequired:       "An API token is required.",
	wizard.ErrNoStopsFound:        "No stops could be listed. Press Enter to try again.",
	wizard.ErrInvalidStop:         "Pick one of the listed stops.",
}

// prompter drives a wizard flow from a line-oriented terminal.
// This is CLI-specific logic and is not part of the core library.
type prompter struct {
	in     *bufio.Scanner
	out    io.Writer
	token  string // pre-filled credential, from PT_API_TOKEN
	cities []string
}

func newPrompter(in io.Reader, out io.Writer, token string, cities []string) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out, token: token, cities: cities}
}

// run answers forms until the flow commits or input ends
func (p *prompter) run(ctx context.Context, f *wizard.Flow) (wizard.SelectionResult, error) {
	step := f.Current()
	for !step.Done() {
		form := step.Form
		p.render(form)

		var answer string
		if form.Field == wizard.FieldAPIToken && p.token != "" && len(form.Errors) == 0 {
			fmt.Fprintln(p.out, "Using API token from PT_API_TOKEN.")
			answer = p.token
		} else {
			line, ok := p.readLine()
			if !ok {
				if err := p.in.Err(); err != nil {
					return wizard.SelectionResult{}, fmt.Errorf("read input: %w", err)
				}
				return wizard.SelectionResult{}, io.ErrUnexpectedEOF
			}
			answer = resolveChoice(line, form.Options)
		}

		var err error
		step, err = f.Submit(ctx, wizard.Input{form.Field: answer})
		if err != nil {
			return wizard.SelectionResult{}, err
		}
	}
	return step.Entry.Result, nil
}

func (p *prompter) render(form *wizard.Form) {
	fmt.Fprintln(p.out)
	for _, key := range form.Errors {
		msg, ok := errorMessages[key]
		if !ok {
			msg = key
		}
		fmt.Fprintf(p.out, "! %s\n", msg)
	}
	fmt.Fprintln(p.out, form.Description)
	if form.Field == wizard.FieldCity && len(p.cities) > 0 {
		fmt.Fprintf(p.out, "  Known cities: %s\n", strings.Join(p.cities, ", "))
	}
	for i, opt := range form.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(p.out, "%s> ", form.Field)
}

func (p *prompter) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// resolveChoice maps a 1-based option number onto its option; anything
// else is taken literally.
func resolveChoice(line string, options []string) string {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return line
}
