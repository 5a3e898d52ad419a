// Package filter narrows and reshapes CLI output with JMESPath expressions
// or an external shell command.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
)

const (
	// QueryShellTimeout is the maximum time allowed for query shell command execution
	QueryShellTimeout = 30 * time.Second
)

var (
	// Shell command pattern: $(command)
	shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)
)

// Apply applies filter and query expressions to a value
// Filter narrows results (e.g., [?price > `500`])
// Query transforms/selects fields (e.g., [].name)
// If query starts with $(...), it's executed as a shell command with the
// value piped to stdin as JSON; the command output is returned as a string.
func Apply(value any, filter string, query string) (any, error) {
	// Normalise structs into the generic JSON shapes JMESPath walks
	result, err := toGeneric(value)
	if err != nil {
		return nil, err
	}

	if filter != "" {
		result, err = search(result, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to apply filter: %w", err)
		}
	}

	if query == "" {
		return result, nil
	}

	if matches := shellPattern.FindStringSubmatch(query); len(matches) > 1 {
		body, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value: %w", err)
		}
		out, err := executeShellCommand(string(body), matches[1])
		if err != nil {
			return nil, fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	}

	result, err = search(result, query)
	if err != nil {
		return nil, fmt.Errorf("failed to apply query: %w", err)
	}
	return result, nil
}

func toGeneric(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return generic, nil
}

func search(data any, expression string) (any, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// executeShellCommand executes a shell command with the body piped to stdin
func executeShellCommand(body string, command string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), QueryShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(body)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := err.Error()
		if stderr.Len() > 0 {
			errMsg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, errMsg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// IsShellCommand checks if a query is a shell command (starts with $(...))
func IsShellCommand(query string) bool {
	return shellPattern.MatchString(query)
}
