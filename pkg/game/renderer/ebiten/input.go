package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tileworld/pkg/engine/input"
)

// keyTable maps Ebiten keys to canonical key names
var keyTable = buildKeyTable()

// reverseKeys maps canonical names back to every Ebiten key producing them
var reverseKeys = buildReverse(keyTable)

func buildKeyTable() map[ebiten.Key]input.Key {
	t := map[ebiten.Key]input.Key{
		ebiten.KeySpace:       input.KeySpace,
		ebiten.KeyEscape:      input.KeyEscape,
		ebiten.KeyEnter:       input.KeyEnter,
		ebiten.KeyNumpadEnter: input.KeyEnter,
		ebiten.KeyTab:         input.KeyTab,
		ebiten.KeyBackspace:   input.KeyBackspace,
		ebiten.KeyArrowUp:     input.KeyArrowUp,
		ebiten.KeyArrowDown:   input.KeyArrowDown,
		ebiten.KeyArrowLeft:   input.KeyArrowLeft,
		ebiten.KeyArrowRight:  input.KeyArrowRight,
		ebiten.KeyF1:          input.KeyF1,
		ebiten.KeyF2:          input.KeyF2,
		ebiten.KeyF3:          input.KeyF3,
		ebiten.KeyF4:          input.KeyF4,
		ebiten.KeyF5:          input.KeyF5,
		ebiten.KeyF6:          input.KeyF6,
		ebiten.KeyF7:          input.KeyF7,
		ebiten.KeyF8:          input.KeyF8,
		ebiten.KeyF9:          input.KeyF9,
		ebiten.KeyF10:         input.KeyF10,
		ebiten.KeyF11:         input.KeyF11,
		ebiten.KeyF12:         input.KeyF12,
	}
	for i, k := range letterKeys {
		t[k] = input.Key(string(rune('a' + i)))
	}
	for i, k := range digitKeys {
		t[k] = input.Key(string(rune('0' + i)))
	}
	return t
}

var letterKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
	ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
	ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
	ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

func buildReverse(t map[ebiten.Key]input.Key) map[input.Key][]ebiten.Key {
	r := make(map[input.Key][]ebiten.Key, len(t))
	for ek, k := range t {
		r[k] = append(r[k], ek)
	}
	return r
}

// mouseButtons pairs Ebiten buttons with input buttons
var mouseButtons = []struct {
	native ebiten.MouseButton
	button input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.ButtonPrimary},
	{ebiten.MouseButtonRight, input.ButtonSecondary},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
}

// isHeld reports whether any Ebiten key producing k is down
func isHeld(k input.Key) bool {
	for _, ek := range reverseKeys[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// collectFrame reads this tick's key and mouse edges
func (b *Backend) collectFrame() input.Frame {
	var events []input.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, input.Quit())
	}
	for _, ek := range inpututil.AppendJustPressedKeys(nil) {
		if k, ok := keyTable[ek]; ok {
			events = append(events, input.KeyDown(k))
		}
	}

	x, y := ebiten.CursorPosition()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.native) {
			events = append(events, input.Event{
				Kind:   input.EventMouseDown,
				Device: input.DeviceMouse,
				Button: mb.button,
				X:      x,
				Y:      y,
			})
		}
	}

	return input.Frame{
		Events: events,
		MouseX: x,
		MouseY: y,
		Held:   isHeld,
		DT:     time.Second / time.Duration(ebiten.TPS()),
	}
}
