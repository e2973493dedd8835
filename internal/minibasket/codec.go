package minibasket

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownAction    = errors.New("unknown action type")
	ErrMalformedPayload = errors.New("malformed action payload")
)

// Envelope is the wire shape of an action: {"type": "...", "payload": {...}}.
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var actionFactories = map[ActionType]func() Action{
	ActionSetTeams:                           func() Action { return &SetTeams{} },
	ActionStartGame:                          func() Action { return &StartGame{} },
	ActionPauseGame:                          func() Action { return &PauseGame{} },
	ActionResumeGame:                         func() Action { return &ResumeGame{} },
	ActionEndQuarter:                         func() Action { return &EndQuarter{} },
	ActionEndGame:                            func() Action { return &EndGame{} },
	ActionResetGame:                          func() Action { return &ResetGame{} },
	ActionRestoreGame:                        func() Action { return &RestoreGame{} },
	ActionAddScore:                           func() Action { return &AddScore{} },
	ActionAddStat:                            func() Action { return &AddStat{} },
	ActionAddFoul:                            func() Action { return &AddFoul{} },
	ActionAddFoulWithFreeThrows:              func() Action { return &AddFoulWithFreeThrows{} },
	ActionAddTimeout:                         func() Action { return &AddTimeout{} },
	ActionSubstitutePlayer:                   func() Action { return &SubstitutePlayer{} },
	ActionSelectPlayer:                       func() Action { return &SelectPlayer{} },
	ActionClearSelection:                     func() Action { return &ClearSelection{} },
	ActionRemoveScore:                        func() Action { return &RemoveScore{} },
	ActionRemoveStat:                         func() Action { return &RemoveStat{} },
	ActionRemoveFoul:                         func() Action { return &RemoveFoul{} },
	ActionEditScore:                          func() Action { return &EditScore{} },
	ActionEditStat:                           func() Action { return &EditStat{} },
	ActionConvertScoreToMiss:                 func() Action { return &ConvertScoreToMiss{} },
	ActionConvertMissToScore:                 func() Action { return &ConvertMissToScore{} },
	ActionAddPendingAction:                   func() Action { return &AddPendingAction{} },
	ActionResolvePendingAction:               func() Action { return &ResolvePendingAction{} },
	ActionResolvePendingActionWithFoulType:   func() Action { return &ResolvePendingActionWithFoulType{} },
	ActionResolvePendingActionWithFreeThrows: func() Action { return &ResolvePendingActionWithFreeThrows{} },
	ActionResolvePendingActionUnknown:        func() Action { return &ResolvePendingActionUnknown{} },
	ActionUpdatePendingActionCandidates:      func() Action { return &UpdatePendingActionCandidates{} },
	ActionRemovePendingAction:                func() Action { return &RemovePendingAction{} },
}

// ActionTypes lists every action tag the reducer understands.
func ActionTypes() []ActionType {
	out := make([]ActionType, 0, len(actionFactories))
	for t := range actionFactories {
		out = append(out, t)
	}
	return out
}

// DecodeAction parses an envelope into its typed action value.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return env.Decode()
}

func (e Envelope) Decode() (Action, error) {
	newAction, ok := actionFactories[e.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
	ptr := newAction()
	payload := bytes.TrimSpace(e.Payload)
	if len(payload) > 0 && !bytes.Equal(payload, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		if err := dec.Decode(ptr); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, e.Type, err)
		}
	}
	return deref(ptr), nil
}

// EncodeAction wraps an action into its wire envelope.
func EncodeAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: a.Type(), Payload: payload})
}

// deref turns the pointer produced by a factory back into the value variant
// the reducer switches on.
func deref(a Action) Action {
	switch v := a.(type) {
	case *SetTeams:
		return *v
	case *StartGame:
		return *v
	case *PauseGame:
		return *v
	case *ResumeGame:
		return *v
	case *EndQuarter:
		return *v
	case *EndGame:
		return *v
	case *ResetGame:
		return *v
	case *RestoreGame:
		return *v
	case *AddScore:
		return *v
	case *AddStat:
		return *v
	case *AddFoul:
		return *v
	case *AddFoulWithFreeThrows:
		return *v
	case *AddTimeout:
		return *v
	case *SubstitutePlayer:
		return *v
	case *SelectPlayer:
		return *v
	case *ClearSelection:
		return *v
	case *RemoveScore:
		return *v
	case *RemoveStat:
		return *v
	case *RemoveFoul:
		return *v
	case *EditScore:
		return *v
	case *EditStat:
		return *v
	case *ConvertScoreToMiss:
		return *v
	case *ConvertMissToScore:
		return *v
	case *AddPendingAction:
		return *v
	case *ResolvePendingAction:
		return *v
	case *ResolvePendingActionWithFoulType:
		return *v
	case *ResolvePendingActionWithFreeThrows:
		return *v
	case *ResolvePendingActionUnknown:
		return *v
	case *UpdatePendingActionCandidates:
		return *v
	case *RemovePendingAction:
		return *v
	}
	panic(fmt.Sprintf("minibasket: no value variant for %T", a))
}
