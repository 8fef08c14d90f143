package x_log

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

//
// ---------- IBM Carbon Colors ----------

const (
	ColorTeal40    = "#3ddbd9"
	ColorBlue60    = "#4589ff"
	ColorBlue40    = "#78a9ff"
	ColorBlue70    = "#0043ce"
	ColorBlueBase  = "#0f62fe"
	ColorRed60     = "#da1e28"
	ColorRedStrong = "#ff0000"
	ColorOrange40  = "#ff832b"
	ColorGray60    = "#8d8d8d"
	ColorGray10    = "#f4f4f4"
	ColorGray90    = "#262626"
)

//
// ---------- Styles Definition ----------

// Styles defines all formatting styles used for console output.
type Styles struct {
	Out               io.Writer
	Timestamp         lipgloss.Style
	Levels            map[zerolog.Level]lipgloss.Style
	Keys              map[string]lipgloss.Style
	Values            map[string]lipgloss.Style
	DefaultKeyStyle   lipgloss.Style
	DefaultValueStyle lipgloss.Style
}

// highlighted field names shared by both themes
var styledKeys = []string{"module", "tree", "kind", "order", "id", "path", "subject"}

//
// ---------- Theme Selectors ----------

// DefaultStylesByName returns a theme by name ("dark", "light").
func DefaultStylesByName(name string) *Styles {
	switch strings.ToLower(name) {
	case "light":
		return DefaultStylesLight()
	default:
		return DefaultStylesDark()
	}
}

//
// ---------- Console Formatter ----------

// levelColor maps a zerolog level name to its badge color.
func levelColor(lvl string) string {
	switch lvl {
	case "debug", "trace":
		return ColorTeal40
	case "info":
		return ColorBlue60
	case "warn":
		return ColorOrange40
	case "error":
		return ColorRed60
	case "fatal", "panic":
		return ColorRedStrong
	default:
		return ColorGray60
	}
}

// ConsoleWriterWithStyles builds a zerolog.ConsoleWriter with styles.
func ConsoleWriterWithStyles(styles *Styles) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        styles.Out,
		TimeFormat: "01-02 15:04:05",

		FormatLevel: func(i any) string {
			lvl := strings.ToLower(fmt.Sprint(i))
			tag := strings.ToUpper(lvl)
			if len(tag) > 3 {
				tag = tag[:3]
			}
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color(levelColor(lvl))).
				Padding(0, 1).
				Render(tag)
		},

		FormatTimestamp: func(i any) string {
			return styles.Timestamp.Render(fmt.Sprintf("[%s]", i))
		},

		FormatFieldName: func(i any) string {
			key := fmt.Sprint(i)
			style, ok := styles.Keys[key]
			if !ok {
				style = styles.DefaultKeyStyle
			}
			eq := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60))
			return style.Render(key) + eq.Render("=")
		},

		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorGray10)).
				Render(fmt.Sprint(i))
		},
	}
}

//
// ---------- Themes ----------

func newStyles(keyColor, infoColor string) *Styles {
	keys := make(map[string]lipgloss.Style, len(styledKeys)+1)
	for _, k := range styledKeys {
		keys[k] = lipgloss.NewStyle().Foreground(lipgloss.Color(keyColor))
	}
	keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60))

	return &Styles{
		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray60)).
			Width(16),

		DefaultKeyStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(keyColor)),
		DefaultValueStyle: lipgloss.NewStyle(),

		Levels: map[zerolog.Level]lipgloss.Style{
			zerolog.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal40)),
			zerolog.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(infoColor)),
			zerolog.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange40)),
			zerolog.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
			zerolog.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRedStrong)),
		},

		Keys: keys,

		Values: map[string]lipgloss.Style{
			"tree":  lipgloss.NewStyle().Italic(true),
			"path":  lipgloss.NewStyle().Italic(true),
			"order": lipgloss.NewStyle().Bold(true),
			"error": lipgloss.NewStyle().Bold(true),
		},
	}
}

// DefaultStylesDark is the theme for dark terminals.
func DefaultStylesDark() *Styles {
	return newStyles(ColorBlue40, ColorBlue60)
}

// DefaultStylesLight is the theme for light terminals.
func DefaultStylesLight() *Styles {
	return newStyles(ColorBlueBase, ColorBlue70)
}
