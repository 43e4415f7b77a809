package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/services"
)

// Tagline is shown under the app name.
const Tagline = "Feel → Cope → Learn"

// About is the about page shared by the TUI and `calm about`.
const About = `calm helps you regulate emotions before analyzing them. Immediate coping
techniques help you feel better in the moment; understanding comes after,
to prevent future distress.

  ✨ Guided coping exercises: breathing, grounding, journaling and more.
  📚 Emotion education: triggers, symptoms and healthy coping strategies.
  🛠  Wellness tools: breathing timer, journal, mood tracker, support chat.
  🔒 Private: everything is stored locally. Nothing is collected or shared.

"Emotions are not problems to be solved, but experiences to be felt and understood."`

// Disclaimer is the crisis notice shown with the about text.
const Disclaimer = `calm is a self-help tool, not a medical diagnosis or treatment, and not a
substitute for professional mental health care.

If you're experiencing a mental health crisis, please contact:
  • 988 - Suicide & Crisis Lifeline (US)
  • Crisis Text Line - Text HOME to 741741
  • Your local emergency services or mental health crisis center

For ongoing support, please consult a licensed therapist, counselor, or psychiatrist.`

// menu is a vertical cursor list shared by the home and emotion screens.
type menu struct {
	cursor int
	size   int
}

func (m *menu) update(key string) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.size-1 {
			m.cursor++
		}
	}
}

// --- Home ---

var homeItems = []struct {
	label, desc string
	to          Route
}{
	{"I'm feeling…", "Pick an emotion and start a guided coping flow", Route{Name: RouteEmotions}},
	{"Tools", "Breathing timer, journal, support chat, mood tracker", Route{Name: RouteTools}},
	{"About", "What calm is, and where to find help", Route{Name: RouteAbout}},
}

type homeView struct {
	menu  menu
	theme config.ThemeConfig
	st    styles
}

func newHomeView(theme config.ThemeConfig) *homeView {
	return &homeView{menu: menu{size: len(homeItems)}, theme: theme, st: newStyles(theme)}
}

func (v *homeView) update(key tea.KeyMsg) *Route {
	if key.String() == "enter" {
		r := homeItems[v.menu.cursor].to
		return &r
	}
	v.menu.update(key.String())
	return nil
}

func (v *homeView) view() string {
	var b strings.Builder
	b.WriteString(v.st.title.Render(v.theme.IconApp+" calm") + "\n")
	b.WriteString(v.st.accent.Render(Tagline) + "\n\n")
	b.WriteString(v.st.text.Render("How are you feeling right now? Cope first, learn later.") + "\n\n")
	for i, it := range homeItems {
		if i == v.menu.cursor {
			b.WriteString(v.st.active.Render(fmt.Sprintf("▸ %-14s", it.label)) + " " + v.st.text.Render(it.desc) + "\n")
		} else {
			b.WriteString(v.st.help.Render(fmt.Sprintf("  %-14s %s", it.label, it.desc)) + "\n")
		}
	}
	b.WriteString("\n" + v.st.help.Render("↑/↓ navigate · enter select · q quit"))
	return b.String()
}

// --- Emotions ---

type emotionsView struct {
	emotions []*domain.Emotion
	menu     menu
	st       styles
}

func newEmotionsView(emotions []*domain.Emotion, theme config.ThemeConfig) *emotionsView {
	return &emotionsView{emotions: emotions, menu: menu{size: len(emotions)}, st: newStyles(theme)}
}

func (v *emotionsView) update(key tea.KeyMsg) *Route {
	if len(v.emotions) == 0 {
		return nil
	}
	id := v.emotions[v.menu.cursor].ID
	switch key.String() {
	case "enter":
		return &Route{Name: RouteFlow, ID: id}
	case "o":
		return &Route{Name: RouteOverview, ID: id}
	case "esc":
		return &Route{Name: RouteHome}
	}
	v.menu.update(key.String())
	return nil
}

func (v *emotionsView) view() string {
	var b strings.Builder
	b.WriteString(v.st.title.Render("What are you feeling?") + "\n\n")
	for i, e := range v.emotions {
		name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(e.Color)).Render(fmt.Sprintf("%s %-16s", e.Icon, e.Name))
		if i == v.menu.cursor {
			b.WriteString(v.st.active.Render("▸ ") + name + " " + v.st.text.Render(e.Description) + "\n")
		} else {
			b.WriteString("  " + name + " " + v.st.help.Render(e.Description) + "\n")
		}
	}
	b.WriteString("\n" + v.st.help.Render("↑/↓ navigate · enter cope now · o learn more · esc home"))
	return b.String()
}

// --- Overview ---

type overviewView struct {
	ov   *services.Overview
	menu menu
	st   styles
}

func newOverviewView(ov *services.Overview, theme config.ThemeConfig) *overviewView {
	return &overviewView{ov: ov, menu: menu{size: len(ov.Exercises)}, st: newStyles(theme)}
}

func (v *overviewView) update(key tea.KeyMsg) *Route {
	switch key.String() {
	case "enter":
		if len(v.ov.Exercises) > 0 {
			return &Route{Name: RouteExercise, ID: v.ov.Exercises[v.menu.cursor].ID}
		}
	case "f":
		return &Route{Name: RouteFlow, ID: v.ov.Emotion.ID}
	case "esc":
		return &Route{Name: RouteEmotions}
	}
	v.menu.update(key.String())
	return nil
}

func (v *overviewView) view() string {
	e := v.ov.Emotion
	var b strings.Builder
	b.WriteString(v.st.title.Render(fmt.Sprintf("%s Understanding %s", e.Icon, e.Name)) + "\n")
	b.WriteString(v.st.text.Render(e.Description) + "\n\n")

	section := func(title string, items []string) {
		b.WriteString(v.st.accent.Render(title) + "\n")
		for _, it := range items {
			b.WriteString(v.st.text.Render("  • "+it) + "\n")
		}
		b.WriteString("\n")
	}
	section("Common triggers", e.Triggers)
	section("Symptoms", e.Symptoms)
	section("Healthy coping strategies", e.CopingStrategies)

	b.WriteString(v.st.accent.Render("Exercises") + "\n")
	for i, def := range v.ov.Exercises {
		if i == v.menu.cursor {
			b.WriteString(v.st.active.Render("▸ "+def.Title) + "\n")
		} else {
			b.WriteString(v.st.help.Render("  "+def.Title) + "\n")
		}
	}
	b.WriteString("\n" + v.st.help.Render("↑/↓ choose · enter practice · f start coping flow · esc emotions"))
	return b.String()
}

// --- About ---

type aboutView struct {
	st styles
}

func (v *aboutView) update(key tea.KeyMsg) *Route {
	if key.String() == "esc" {
		return &Route{Name: RouteHome}
	}
	return nil
}

func (v *aboutView) view() string {
	var b strings.Builder
	b.WriteString(v.st.title.Render("About calm") + "\n")
	b.WriteString(v.st.accent.Render(Tagline) + "\n\n")
	b.WriteString(v.st.text.Render(About) + "\n\n")
	b.WriteString(v.st.paused.Render("Important") + "\n")
	b.WriteString(v.st.text.Render(Disclaimer) + "\n\n")
	b.WriteString(v.st.help.Render("esc home · q quit"))
	return b.String()
}
