package renderer

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"badgebounce/pkg/engine/input"
)

var (
	ColorAction      color.Style
	ColorActionShort color.Style
	ColorDenied      color.Style
	ColorSubtle      color.Style
	ColorValue       color.Style

	regexpStringFunctions = regexp.MustCompile(`([A-Z_]*){([a-z A-Z0-9_,:./-]+)}`)
)

// InitColors initializes the console styles.
func InitColors() {
	ColorAction = color.Style{color.FgMagenta}
	ColorActionShort = color.Style{color.FgMagenta, color.OpBold}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorValue = color.Style{color.FgGreen, color.OpBold}
}

// FormatString formats a console message with markup. ACTION{name}
// highlights a command, VALUE{x} highlights a value and SUBTLE{x} dims it.
// Translate msg with gotext before passing it in.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function, operand := match[1], match[2]

		var val string
		switch function {
		case "ACTION":
			val = ColorActionShort.Sprint(operand[0:1]) + ColorAction.Sprint(operand[1:])
		case "VALUE":
			val = ColorValue.Sprint(operand)
		case "SUBTLE":
			val = ColorSubtle.Sprint(operand)
		default:
			val = operand
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

// PrintString prints a formatted console message.
func PrintString(msg string, a ...any) {
	fmt.Print(FormatString(msg, a...))
}

// PrintError prints err to stderr in the denied style.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w in the denied style.
func FprintError(w io.Writer, err error) {
	fmt.Fprintln(w, ColorDenied.Sprintf("%s %v", gotext.Get("error:"), err))
}

// actionLabel is the translated help text for act.
func actionLabel(act input.Action) string {
	switch act {
	case input.ActionQuit:
		return gotext.Get("quit")
	case input.ActionTogglePause:
		return gotext.Get("pause")
	case input.ActionOpenLink:
		return gotext.Get("open link")
	}
	return strings.ToLower(input.ActionName(act))
}

// KeyHelp lists the current key bindings, one action per entry, in a
// stable order. Mouse and control-key codes are left out.
func KeyHelp() string {
	byAction := input.GetBindingsByAction()

	actions := make([]input.Action, 0, len(byAction))
	for act := range byAction {
		actions = append(actions, act)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	parts := make([]string, 0, len(actions))
	for _, act := range actions {
		var keys []string
		for _, code := range byAction[act] {
			if strings.HasPrefix(code, "mouse_") || strings.HasPrefix(code, "ctrl_") {
				continue
			}
			keys = append(keys, code)
		}
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, strings.Join(keys, "/")+" "+actionLabel(act))
	}
	return strings.Join(parts, "  ")
}
