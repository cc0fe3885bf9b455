package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/quiz-arcade/internal/engine"
)

// Message types carried in Envelope.T.
const (
	TypeInput = "input" // client -> server
	TypeState = "state" // server -> client
	TypeError = "error" // server -> client
)

// Envelope is the frame on the wire: a type tag and a raw JSON payload.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Input is a client action. Target is the cell index for "select".
type Input struct {
	Action string `json:"action"`
	Target int    `json:"target,omitempty"`
}

// State is published after every tick that changed the game.
type State struct {
	Game     string `json:"game"`
	Tick     uint64 `json:"tick"`
	Score    int    `json:"score"`
	Over     bool   `json:"over"`
	Won      bool   `json:"won"`
	Paused   bool   `json:"paused"`
	Reason   string `json:"reason,omitempty"`
	Snapshot any    `json:"snapshot"`
}

// Error reports a rejected client message.
type Error struct {
	Message string `json:"message"`
}

// Encode wraps payload in an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("live: encode: empty message type")
	}
	if payload == nil {
		return nil, fmt.Errorf("live: encode %s: nil payload", t)
	}
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("live: encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: p})
}

// DecodeEnvelope parses one frame without touching the payload.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("live: decode: empty frame")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("live: decode: %w", err)
	}
	if e.T == "" {
		return Envelope{}, errors.New("live: decode: missing message type")
	}
	return e, nil
}

// DecodePayload unmarshals the envelope payload into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("live: decode %s: empty payload", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("live: decode %s: %w", env.T, err)
	}
	return out, nil
}

func stateFrame(f engine.Frame) State {
	return State{
		Game:     f.Game,
		Tick:     f.Tick,
		Score:    f.State.Score,
		Over:     f.State.GameOver,
		Won:      f.State.Won,
		Paused:   f.State.Paused,
		Reason:   f.State.Reason,
		Snapshot: f.Snapshot,
	}
}
