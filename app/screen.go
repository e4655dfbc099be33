package app

import (
	"io/fs"
	"time"

	"github.com/moderniselife/hellogui/gui"
)

// TextAsset is the resource holding the greeting
const TextAsset = "text.txt"

// FallbackText is shown when the text asset cannot be read
const FallbackText = "Nifty 1.4 Core Hello World"

// StartScreen is the id of the only screen
const StartScreen = "start"

// LoadText returns the contents of the named asset, or FallbackText if
// it is missing or unreadable
func LoadText(fsys fs.FS, name string) string {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return FallbackText
	}
	return string(data)
}

// HelloScreen builds the start screen: a fading layer with a gradient
// background, the greeting text and an exit button
func HelloScreen(text string, controller gui.Controller) *gui.Screen {
	fade := func(start, end string) gui.Effect {
		return gui.Effect{
			Name:   gui.EffectFade,
			Length: 500 * time.Millisecond,
			Params: map[string]string{"start": start, "end": end},
		}
	}

	return &gui.Screen{
		ID:         StartScreen,
		Controller: controller,
		Layers: []*gui.Layer{{
			ID:            "layer",
			ChildLayout:   gui.LayoutCenter,
			OnStartScreen: []gui.Effect{fade("#0", "#f")},
			OnEndScreen:   []gui.Effect{fade("#f", "#0")},
			OnActive: []gui.Effect{{
				Name: gui.EffectGradient,
				Values: []gui.EffectValue{
					{"offset": "0%", "color": "#333f"},
					{"offset": "100%", "color": "#ffff"},
				},
			}},
			Panels: []*gui.Panel{{
				ChildLayout: gui.LayoutVertical,
				Children: []gui.Element{
					&gui.Text{
						Text:   text,
						Wrap:   true,
						Style:  "base-font",
						Color:  "#000f",
						Align:  gui.AlignCenter,
						VAlign: gui.VAlignCenter,
					},
					&gui.Panel{Height: gui.Px(10)},
					&gui.Control{
						ID:     "exit",
						Type:   "button",
						Label:  "Exit",
						Align:  gui.AlignCenter,
						VAlign: gui.VAlignCenter,
					},
				},
			}},
		}},
	}
}

// ExitController ends the GUI when the exit button is clicked
type ExitController struct{}

// Bind implements gui.Controller
func (ExitController) Bind(g *gui.GUI, _ *gui.Screen) {
	g.Subscribe("exit", gui.ButtonClicked, func(string, gui.Event) {
		g.Exit()
	})
}
