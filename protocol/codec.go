package protocol

import (
	"encoding/json"
	"fmt"

	"ballpit/sim"
)

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope with empty type")
	}
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var e = Envelope{t, pb}

	return json.Marshal(e)
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty message")
	}
	var e Envelope
	err := json.Unmarshal(b, &e)
	if err != nil {
		return Envelope{}, err
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// Snapshot converts body views into the wire form.
func Snapshot(tick int, paused bool, bodies []sim.BodyView) State {
	st := State{
		Tick:   tick,
		Paused: paused,
		Bodies: make([]BodySnapshot, 0, len(bodies)),
	}
	for _, b := range bodies {
		st.Bodies = append(st.Bodies, BodySnapshot{
			ID:     b.ID,
			X:      b.Position.X,
			Y:      b.Position.Y,
			R:      b.Radius,
			A:      b.Angle,
			Sprite: string(b.Sprite),
		})
	}
	return st
}
