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

package shamir

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-qrvault/pkg/types"
)

// State is a reconstruction session lifecycle state.
type State string

const (
	// StateEmpty is a freshly created session with no shares.
	StateEmpty State = "empty"

	// StateCollecting means at least one share has been accepted but
	// the threshold has not been reached.
	StateCollecting State = "collecting"

	// StateReady means enough distinct shares are collected; the
	// session stopped accepting input and awaits Finalize.
	StateReady State = "ready"

	// StateReconstructed is the terminal success state.
	StateReconstructed State = "reconstructed"

	// StateFailed is the terminal error state.
	StateFailed State = "failed"
)

// Session accumulates shares for one recovery workflow and stops
// automatically once the threshold is reached.
//
// The first accepted share fixes the session's expected split
// parameters; every later share is checked against them. A session is
// owned by exactly one workflow and is not safe for concurrent
// mutation; callers wanting concurrent scanning must serialize access.
type Session struct {
	id          string
	state       State
	want        fingerprint
	collected   map[byte]Share
	attempts    int
	maxAttempts int
	failure     error
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithMaxAttempts caps the number of AddShare calls (successful or
// not). If the cap is reached while the session is still below
// threshold, it fails with types.ErrInsufficientShares. Zero means
// unlimited.
func WithMaxAttempts(n int) SessionOption {
	return func(s *Session) {
		s.maxAttempts = n
	}
}

// NewSession creates an empty reconstruction session.
//
// A max-attempts cap below the minimum possible threshold can never be
// satisfied, so it is rejected here rather than surfacing later as an
// inevitable ErrInsufficientShares.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		id:        uuid.New().String(),
		state:     StateEmpty,
		collected: make(map[byte]Share),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxAttempts != 0 && s.maxAttempts < MinThreshold {
		return nil, fmt.Errorf("%w: max attempts %d below minimum threshold %d",
			types.ErrInvalidParameters, s.maxAttempts, MinThreshold)
	}
	return s, nil
}

// ID returns the session's correlation identifier, for logs and
// metrics. It carries no secret material.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Collected returns the number of distinct-index shares accepted.
func (s *Session) Collected() int {
	return len(s.collected)
}

// Threshold returns the expected threshold, or 0 before the first
// share fixed the session's parameters.
func (s *Session) Threshold() int {
	if s.state == StateEmpty {
		return 0
	}
	return int(s.want.threshold)
}

// Err returns the failure that moved the session to StateFailed.
func (s *Session) Err() error {
	return s.failure
}

// AddShare submits a share to the session.
//
// A share whose index is already collected is a silent no-op: repeated
// scans of the same physical share are expected and harmless. A share
// inconsistent with the session's parameters is rejected with
// types.ErrMismatchedShares but still consumes an attempt. Once the
// number of distinct indices reaches the threshold the session moves to
// StateReady and ignores further input.
func (s *Session) AddShare(share Share) error {
	switch s.state {
	case StateEmpty, StateCollecting:
	case StateReady:
		// Already have enough; extra scans are harmless.
		return nil
	default:
		return fmt.Errorf("%w: session is %s", types.ErrInvalidInput, s.state)
	}

	s.attempts++
	err := s.accept(share)
	if err == nil && len(s.collected) >= int(s.want.threshold) {
		s.state = StateReady
		return nil
	}

	if s.maxAttempts != 0 && s.attempts >= s.maxAttempts {
		s.state = StateFailed
		s.failure = fmt.Errorf("%w: scan cap of %d reached with %d of %d shares",
			types.ErrInsufficientShares, s.maxAttempts, len(s.collected), s.want.threshold)
		if err != nil {
			return err
		}
		return s.failure
	}

	return err
}

// accept validates the share and records it, fixing the session
// fingerprint on the first accepted share.
func (s *Session) accept(share Share) error {
	if err := share.Validate(); err != nil {
		return err
	}

	if s.state == StateEmpty {
		s.want = share.fingerprint()
		s.state = StateCollecting
	} else if share.fingerprint() != s.want {
		return fmt.Errorf("%w: share %d does not match this session's split",
			types.ErrMismatchedShares, share.Index)
	}

	if _, dup := s.collected[share.Index]; dup {
		// Rescan of an already collected share.
		return nil
	}
	s.collected[share.Index] = share
	return nil
}

// Finalize reconstructs the secret from the collected shares. It is
// callable only from StateReady and runs reconstruction exactly once,
// moving the session to StateReconstructed or, on an integrity-tag
// mismatch, to StateFailed with types.ErrReconstructionFailed.
//
// The caller owns the returned secret and must zero it with
// types.Zeroize once it is no longer needed.
func (s *Session) Finalize() ([]byte, error) {
	if s.state != StateReady {
		return nil, fmt.Errorf("%w: finalize called in state %s", types.ErrInvalidInput, s.state)
	}

	shares := make([]Share, 0, len(s.collected))
	for _, share := range s.collected {
		shares = append(shares, share)
	}

	secret, err := Reconstruct(shares)
	if err != nil {
		s.state = StateFailed
		s.failure = err
		return nil, err
	}

	s.state = StateReconstructed
	return secret, nil
}
