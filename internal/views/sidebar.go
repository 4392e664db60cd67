package views

// Brand shown in the sidebar header.
const (
	BrandName    = "AI Match"
	BrandTagline = "Live Matching Platform"
)

// Footer fallbacks used until the current user is loaded.
const (
	FallbackUserName     = "Demo User"
	FallbackUserLocation = "Demo City"
)

// NavItem is one sidebar entry. Badge values are static.
type NavItem struct {
	Title  string `json:"title"`
	View   View   `json:"view"`
	Badge  string `json:"badge,omitempty"`
	Active bool   `json:"active"`
}

// SidebarUser is the footer card.
type SidebarUser struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Initial   string `json:"initial"`
	AvatarURL string `json:"avatar_url"`
}

// SidebarModel is the navigation chrome around every view.
type SidebarModel struct {
	Brand      string      `json:"brand"`
	Tagline    string      `json:"tagline"`
	Navigation []NavItem   `json:"navigation"`
	Settings   []NavItem   `json:"settings"`
	User       SidebarUser `json:"user"`
	Breadcrumb string      `json:"breadcrumb"`
}

var navigationItems = []NavItem{
	{Title: "Overview", View: ViewOverview},
	{Title: "Matches", View: ViewMatches, Badge: "3"},
	{Title: "Messages", View: ViewMessages, Badge: "12"},
	{Title: "Analytics", View: ViewAnalytics},
	{Title: "Profile", View: ViewProfile},
}

var settingsItems = []NavItem{
	{Title: "Settings", View: ViewSettings},
	{Title: "Notifications", View: ViewNotifications},
}

func markActive(items []NavItem, active View) []NavItem {
	out := make([]NavItem, len(items))
	for i, item := range items {
		item.Active = item.View == active
		out[i] = item
	}
	return out
}

// Sidebar projects the navigation with active highlighted.
func Sidebar(d Data, active View) SidebarModel {
	user := SidebarUser{Name: FallbackUserName, Location: FallbackUserLocation, Initial: "U"}
	if u := d.CurrentUser; u != nil {
		if u.Name != "" {
			user.Initial = initial(u.Name)
		}
		if u.Name != "" {
			user.Name = u.Name
		}
		if u.Location != "" {
			user.Location = u.Location
		}
		user.AvatarURL = u.AvatarURL
	}
	user.AvatarURL = avatarOrPlaceholder(user.AvatarURL)

	return SidebarModel{
		Brand:      BrandName,
		Tagline:    BrandTagline,
		Navigation: markActive(navigationItems, active),
		Settings:   markActive(settingsItems, active),
		User:       user,
		Breadcrumb: string(active),
	}
}
