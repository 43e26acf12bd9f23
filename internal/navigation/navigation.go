// Package navigation models the application shell's sidebar: menu sections,
// active-route highlighting and the collapsed state.
package navigation

// Sidebar widths in pixels.
const (
	CollapsedWidth = 80
	ExpandedWidth  = 260
)

// Item is one menu entry.
type Item struct {
	Path   string `json:"path"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// Section is a titled group of menu entries.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Shell is the sidebar state for one route.
type Shell struct {
	Sections   []Section `json:"sections"`
	Collapsed  bool      `json:"collapsed"`
	Width      int       `json:"width"`
	ShowLabels bool      `json:"show_labels"`
	Toggle     string    `json:"toggle_label,omitempty"`
}

var mainMenu = []Item{
	{Path: "/dashboard", Label: "Dashboard", Icon: "home"},
	{Path: "/candidates", Label: "Candidates", Icon: "users"},
	{Path: "/upload", Label: "Upload", Icon: "upload"},
	{Path: "/analytics", Label: "Analytics", Icon: "bar-chart"},
	{Path: "/hr-assistant", Label: "AI Assistant", Icon: "message-square"},
	{Path: "/ai-insights", Label: "AI Insights", Icon: "brain"},
	{Path: "/bias-analysis", Label: "Bias Analysis", Icon: "shield"},
}

var secondaryMenu = []Item{
	{Path: "/ai-matching", Label: "AI Matching", Icon: "target"},
	{Path: "/skills-analytics", Label: "Skills", Icon: "code"},
}

// Build returns the sidebar for the current path. An item is active only when its
// path equals path exactly. Labels and section titles are hidden when collapsed.
func Build(path string, collapsed bool) Shell {
	shell := Shell{
		Sections: []Section{
			section("Main Menu", mainMenu, path, collapsed),
			section("Advanced", secondaryMenu, path, collapsed),
		},
		Collapsed:  collapsed,
		Width:      ExpandedWidth,
		ShowLabels: !collapsed,
		Toggle:     "Collapse Sidebar",
	}
	if collapsed {
		shell.Width = CollapsedWidth
		shell.Toggle = ""
	}
	return shell
}

// ActiveItem returns the active entry of s, if any.
func (s Shell) ActiveItem() (Item, bool) {
	for _, sec := range s.Sections {
		for _, it := range sec.Items {
			if it.Active {
				return it, true
			}
		}
	}
	return Item{}, false
}

func section(title string, menu []Item, path string, collapsed bool) Section {
	items := make([]Item, len(menu))
	for i, it := range menu {
		it.Active = it.Path == path
		if collapsed {
			it.Label = ""
		}
		items[i] = it
	}
	if collapsed {
		title = ""
	}
	return Section{Title: title, Items: items}
}
