package input

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"p", "p", true},
		{"P", "p", true},
		{"7", "7", true},
		{"space", KeySpace, true},
		{"Escape", KeyEscape, true},
		{"esc", KeyEscape, true},
		{"enter", KeyEnter, true},
		{"return", KeyEnter, true},
		{"tab", KeyTab, true},
		{"backspace", KeyBackspace, true},
		{"up", KeyArrowUp, true},
		{"F5", KeyF5, true},
		{" ", KeySpace, true},
		{"", KeyNone, false},
		{"hyperspace", KeyNone, false},
		{"ß", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewKeymap_UnknownKeyLeavesActionUnbound(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	km := NewKeymap(map[string]string{
		"key_play":  "p",
		"key_warp":  "warpdrive",
		"key_pause": "space",
	}, log)

	if k, ok := km.Key("play"); !ok || k != "p" {
		t.Errorf("Key(play) = (%q, %v), want (p, true)", k, ok)
	}
	if !km.Has("warp") {
		t.Error("Has(warp) = false, want true (declared but unbound)")
	}
	if _, ok := km.Key("warp"); ok {
		t.Error("Key(warp) ok = true, want false")
	}
	if km.Matches("warp", KeyNone) {
		t.Error("Matches(warp, KeyNone) = true, want false")
	}
	if !km.Matches("key_pause", KeySpace) {
		t.Error("Matches(key_pause, space) = false, want true")
	}
	if !strings.Contains(buf.String(), "warpdrive") {
		t.Errorf("log output %q does not mention the unknown key", buf.String())
	}
}

func TestActionName(t *testing.T) {
	for _, in := range []string{"key_play", "KEY_PLAY", " play ", "Play"} {
		if got := ActionName(in); got != "play" {
			t.Errorf("ActionName(%q) = %q, want play", in, got)
		}
	}
}

func TestTranslate(t *testing.T) {
	table := map[string]Key{"KeyP": "p"}
	ev := Translate(RawInput{Device: DeviceKeyboard, Code: "KeyP"}, table)
	if ev.Kind != EventKeyDown || ev.Key != "p" {
		t.Errorf("Translate(KeyP) = %+v, want key-down p", ev)
	}
	if ev := Translate(RawInput{Code: "KeyZ"}, table); ev.Kind != EventNone {
		t.Errorf("Translate(KeyZ) kind = %v, want EventNone", ev.Kind)
	}
}

func TestAllKeysParse(t *testing.T) {
	for _, k := range AllKeys() {
		if got, ok := ParseKey(string(k)); !ok || got != k {
			t.Errorf("ParseKey(%q) = (%q, %v), want itself", k, got, ok)
		}
	}
}
