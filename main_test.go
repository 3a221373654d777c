package main

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"testing"

	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/game/state"
)

type fakeBackend struct {
	run func() error
	ran bool
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Convert(image.Image) (sprite.Sheet, error) { return nil, nil }

func (f *fakeBackend) Run(context.Context, *state.Session) error {
	f.ran = true
	return f.run()
}

func TestRunBackend(t *testing.T) {
	errStop := errors.New("stop")
	tests := []struct {
		name    string
		run     func() error
		wantErr string
	}{
		{"clean exit", func() error { return nil }, ""},
		{"error passes through", func() error { return errStop }, "stop"},
		{"panic becomes error", func() error { panic("tick exploded") }, "panic: tick exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs strings.Builder
			log := slog.New(slog.NewTextHandler(&logs, nil))
			be := &fakeBackend{run: tt.run}

			err := runBackend(context.Background(), be, nil, log)
			if !be.ran {
				t.Fatal("backend Run not called")
			}
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("runBackend() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("runBackend() = %v, want %q", err, tt.wantErr)
			}
			if strings.HasPrefix(tt.wantErr, "panic") && !strings.Contains(logs.String(), "session panicked") {
				t.Errorf("log = %q, want a session panicked record", logs.String())
			}
		})
	}
}
