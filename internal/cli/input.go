// Copyright (c) 2026 Jeremy Hahn
// Copyright (c) 2026 Automate The Things, LLC
//
// This file is part of go-qrvault.
//
// go-qrvault is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeremyhahn/go-qrvault/internal/password"
	"github.com/jeremyhahn/go-qrvault/pkg/qrwire"
	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// readInput reads secret material from a file, or stdin when path is "-".
// Trailing newlines are stripped so `echo secret | qrvault seal` behaves.
func readInput(path string) ([]byte, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		// #nosec G304 - input path is provided by the user
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	data = []byte(strings.TrimRight(string(data), "\r\n"))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: input is empty", types.ErrInvalidInput)
	}
	return data, nil
}

// readPassword resolves a password from a file flag or an environment
// variable, in that order. Interactive prompting is deliberately not
// supported; batch and scripted use is the target. The caller must
// Clear the returned password.
func readPassword(fileFlag, envName string) (types.Password, error) {
	if fileFlag != "" {
		// #nosec G304 - password file path is provided by the user
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to read password file: %w", err)
		}
		pw := []byte(strings.TrimRight(string(data), "\r\n"))
		types.Zeroize(data)
		if len(pw) == 0 {
			return nil, fmt.Errorf("%w: password file is empty", types.ErrInvalidInput)
		}
		defer types.Zeroize(pw)
		return password.New(pw)
	}

	if pw := os.Getenv(envName); pw != "" {
		return password.FromString(pw)
	}
	return nil, fmt.Errorf("%w: no password provided (use --password-file or %s)", types.ErrInvalidInput, envName)
}

// readPayload loads one base64 wire payload from a file or stdin and
// decodes it.
func readPayload(path string) (qrwire.Record, error) {
	text, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return decodePayloadText(string(text))
}

// decodePayloadText turns base64 payload text back into a wire record.
// Whitespace is tolerated; QR scanners tend to introduce it.
func decodePayloadText(text string) (qrwire.Record, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, text)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not valid base64: %v", types.ErrMalformedPayload, err)
	}
	return qrwire.Decode(raw)
}

// encodePayloadText renders wire bytes as base64 payload text.
func encodePayloadText(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// writePayload writes payload text to a file (0600) or stdout when
// path is "-" or empty.
func writePayload(path, text string) error {
	if path == "" || path == "-" {
		_, err := fmt.Println(text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
