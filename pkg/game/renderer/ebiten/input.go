package ebiten

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "badgebounce/pkg/engine/input"
	"badgebounce/pkg/game/renderer"
)

// pollIntents collects this frame's key presses and badge clicks.
func (w *Window) pollIntents() []engineinput.Intent {
	now := time.Now()
	var intents []engineinput.Intent

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		intent := engineinput.Resolve(engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      keyCode(k.String(), ctrl),
			Timestamp: now,
		})
		if intent.Action != engineinput.ActionNone {
			intents = append(intents, intent)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		if renderer.HitBadge(w, float64(cx), float64(cy)) {
			intents = append(intents, engineinput.Resolve(engineinput.RawInput{
				Device:    engineinput.DeviceMouse,
				Code:      "mouse_left_badge",
				Timestamp: now,
			}))
		}
	}

	return intents
}

// keyCode converts an ebiten key name to a binding code.
func keyCode(name string, ctrl bool) string {
	name = strings.ToLower(name)
	if ctrl && name == "c" {
		return "ctrl_c"
	}
	if name == "numpadenter" {
		return "enter"
	}
	return name
}
