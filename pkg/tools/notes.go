package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"convoy/pkg/toolreg"
)

// NoteStore is an in-memory scratchpad the model can write to and list
// across tool calls within one conversation. It holds no state across
// processes — persistence is explicitly out of scope for this repository.
type NoteStore struct {
	mu    sync.Mutex
	notes map[string]string
}

// NewNoteStore returns an empty NoteStore.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[string]string)}
}

// RegisterNotes wires store's add/list operations up as two model-callable
// tools, grounded on the task-ID-per-entry pattern connachermurphy-twooms's
// storage layer uses for its task manager.
func RegisterNotes(reg *toolreg.Registry, store *NoteStore) {
	reg.Register("add_note", "Saves a short text note in the conversation's scratchpad and returns its ID.",
		[]toolreg.ParamSpec{
			{Name: "content", Type: "string", Description: "Text of the note to save.", Required: true},
		},
		func(_ context.Context, arguments string) (string, error) {
			var args struct {
				Content string `json:"content"`
			}
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return "", fmt.Errorf("add_note: parse arguments: %w", err)
			}
			id := uuid.NewString()
			store.mu.Lock()
			store.notes[id] = args.Content
			store.mu.Unlock()
			return id, nil
		})

	reg.Register("list_notes", "Lists every note saved so far in this conversation's scratchpad.",
		nil,
		func(_ context.Context, _ string) (string, error) {
			store.mu.Lock()
			defer store.mu.Unlock()
			if len(store.notes) == 0 {
				return "no notes saved yet", nil
			}
			out, err := json.Marshal(store.notes)
			if err != nil {
				return "", fmt.Errorf("list_notes: marshal: %w", err)
			}
			return string(out), nil
		})
}
