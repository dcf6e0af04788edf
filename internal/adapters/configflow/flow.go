// Package configflow implements the interactive account setup run with
// the -setup flag. It walks the user step, validates the credentials
// against the owner API and writes the config file.
package configflow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/borski/ha-lucidmotors/internal/config"
	"github.com/borski/ha-lucidmotors/internal/domain"
	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

const (
	stepUser = "user"

	// loginTimeout bounds one credential validation round trip.
	loginTimeout = 10 * time.Second
	// maxAttempts is how many times the user step is retried on a
	// recoverable error before the flow gives up.
	maxAttempts = 3
)

// LoginFunc validates credentials against one region's API gateway.
type LoginFunc func(ctx context.Context, region domain.Region, username, password string) error

// Flow drives the terminal dialogue. Reads and writes go through the
// injected streams so tests can script it.
type Flow struct {
	strings output.Strings
	login   LoginFunc
	locale  string
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
}

func New(strs output.Strings, login LoginFunc, locale string, in io.Reader, out io.Writer, logger *slog.Logger) *Flow {
	return &Flow{
		strings: strs,
		login:   login,
		locale:  locale,
		in:      in,
		out:     out,
		logger:  logger,
	}
}

// Run executes the user step until the credentials validate, the user
// aborts, or the attempts run out. The account already being configured
// is a normal exit, not an error.
func (f *Flow) Run(ctx context.Context, path string) error {
	scanner := bufio.NewScanner(f.in)

	title, err := f.strings.StepTitle(f.locale, stepUser)
	if err != nil {
		f.logger.Warn("missing step title", "step", stepUser)
	}
	fmt.Fprintf(f.out, "== %s ==\n", title)
	if desc, err := f.strings.StepDescription(f.locale, stepUser); err == nil && desc != "" {
		fmt.Fprintln(f.out, desc)
	}
	fmt.Fprintln(f.out)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		answers, err := f.askUserStep(scanner)
		if err != nil {
			return err
		}

		if f.alreadyConfigured(path, answers.username) {
			text, err := f.strings.FlowAbort(f.locale, "already_configured")
			if err != nil {
				f.logger.Warn("missing abort text", "code", "already_configured")
			}
			fmt.Fprintln(f.out, text)
			return nil
		}

		loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
		err = f.login(loginCtx, answers.region, answers.username, answers.password)
		cancel()
		if err == nil {
			return f.persist(path, answers)
		}

		code := errorCode(err)
		text, terr := f.strings.FlowError(f.locale, code)
		if terr != nil {
			f.logger.Warn("missing error text", "code", code)
		}
		fmt.Fprintf(f.out, "%s\n\n", text)
		f.logger.Warn("credential validation failed", "code", code, "attempt", attempt)
	}

	return fmt.Errorf("setup: no valid credentials after %d attempts", maxAttempts)
}

type userAnswers struct {
	region   domain.Region
	host     string
	username string
	password string
}

func (f *Flow) askUserStep(scanner *bufio.Scanner) (userAnswers, error) {
	var answers userAnswers

	host, err := f.ask(scanner, f.fieldLabel("host")+" (optional, blank for the regional default)")
	if err != nil {
		return answers, err
	}
	answers.host = host

	answers.username, err = f.ask(scanner, f.fieldLabel("username"))
	if err != nil {
		return answers, err
	}
	answers.password, err = f.ask(scanner, f.fieldLabel("password"))
	if err != nil {
		return answers, err
	}

	answers.region, err = f.askRegion(scanner)
	if err != nil {
		return answers, err
	}
	if answers.host != "" {
		answers.region = domain.Region{Name: answers.region.Name, APIHost: answers.host}
	}
	return answers, nil
}

func (f *Flow) fieldLabel(field string) string {
	label, err := f.strings.ConfigField(f.locale, stepUser, field)
	if err != nil {
		f.logger.Warn("missing field label", "step", stepUser, "field", field)
	}
	return label
}

func (f *Flow) ask(scanner *bufio.Scanner, label string) (string, error) {
	fmt.Fprintf(f.out, "%s: ", label)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("setup: read input: %w", err)
		}
		return "", errors.New("setup: input closed")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func (f *Flow) askRegion(scanner *bufio.Scanner) (domain.Region, error) {
	regions := domain.Regions()
	fmt.Fprintf(f.out, "%s:\n", f.fieldLabel("region"))
	for i, r := range regions {
		fmt.Fprintf(f.out, "  %d. %s\n", i+1, r.Name)
	}

	answer, err := f.ask(scanner, fmt.Sprintf("Choice [1-%d, default 1]", len(regions)))
	if err != nil {
		return domain.Region{}, err
	}
	if answer == "" {
		return regions[0], nil
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(regions) {
		fmt.Fprintln(f.out, "Unrecognized choice, using the default.")
		return regions[0], nil
	}
	return regions[idx-1], nil
}

// alreadyConfigured reports whether the config file at path holds the
// same account. A second setup for a configured account aborts instead
// of overwriting it.
func (f *Flow) alreadyConfigured(path, username string) bool {
	existing, err := config.FromFile(path)
	if err != nil {
		return false
	}
	return existing.Lucid.Username != "" && existing.Lucid.Username == username
}

func (f *Flow) persist(path string, answers userAnswers) error {
	cfg := config.Default()
	cfg.Lucid.Username = answers.username
	cfg.Lucid.Password = answers.password
	cfg.Lucid.Region = answers.region.Name
	cfg.Lucid.Host = answers.host
	cfg.Locale = f.locale

	if err := cfg.Write(path); err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultPath
	}
	fmt.Fprintf(f.out, "Credentials validated. Configuration written to %s.\n", path)
	f.logger.Info("setup complete", "path", path, "region", answers.region.Name)
	return nil
}

// errorCode buckets a login failure into the flow's error codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAuth):
		return "invalid_auth"
	case errors.Is(err, domain.ErrCannotConnect), errors.Is(err, context.DeadlineExceeded):
		return "cannot_connect"
	default:
		return "unknown"
	}
}
