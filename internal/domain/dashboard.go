package domain

// Stat is a headline number shown in a stats grid
type Stat struct {
	Number string `yaml:"number" json:"number"`
	Label  string `yaml:"label" json:"label"`
	Icon   string `yaml:"icon" json:"icon"`
	Color  string `yaml:"color" json:"color,omitempty"`
}

// Feature is a marketing card on the landing and auth pages
type Feature struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Severity grades a citizen report
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Report is one row of the recent reports list
type Report struct {
	ID       int      `yaml:"id" json:"id"`
	Type     string   `yaml:"type" json:"type"`
	Location string   `yaml:"location" json:"location"`
	Status   string   `yaml:"status" json:"status"`
	Time     string   `yaml:"time" json:"time"`
	Severity Severity `yaml:"severity" json:"severity"`
}

// Prediction is one AI forecast card
type Prediction struct {
	Type        string `yaml:"type" json:"type"`
	Probability string `yaml:"probability" json:"probability"`
	Location    string `yaml:"location" json:"location"`
	Time        string `yaml:"time" json:"time"`
}

// Stream is a live stream entry in the dashboard sidebar
type Stream struct {
	Title    string `yaml:"title" json:"title"`
	Location string `yaml:"location" json:"location"`
	Live     bool   `yaml:"live" json:"live"`
}

// SystemStatus is one row of the system status panel
type SystemStatus struct {
	Name   string `yaml:"name" json:"name"`
	Status string `yaml:"status" json:"status"`
	Online bool   `yaml:"online" json:"online"`
}

// Dashboard is the whole mock data set behind the landing page and dashboard
type Dashboard struct {
	User          string         `yaml:"user" json:"user"`
	Features      []Feature      `yaml:"features" json:"features"`
	ExtraFeatures []Feature      `yaml:"extra_features" json:"extra_features"`
	HomeStats     []Stat         `yaml:"home_stats" json:"home_stats"`
	Stats         []Stat         `yaml:"stats" json:"stats"`
	Reports       []Report       `yaml:"reports" json:"reports"`
	Predictions   []Prediction   `yaml:"predictions" json:"predictions"`
	QuickActions  []string       `yaml:"quick_actions" json:"quick_actions"`
	Streams       []Stream       `yaml:"streams" json:"streams"`
	Systems       []SystemStatus `yaml:"systems" json:"systems"`
}

// DashboardTab selects the main panel of the dashboard
type DashboardTab string

const (
	TabOverview    DashboardTab = "overview"
	TabReports     DashboardTab = "reports"
	TabPredictions DashboardTab = "predictions"
	TabAnalytics   DashboardTab = "analytics"
)

// DashboardTabs are shown in this order
var DashboardTabs = []DashboardTab{TabOverview, TabReports, TabPredictions, TabAnalytics}

// ParseDashboardTab falls back to the overview tab for unknown values
func ParseDashboardTab(s string) DashboardTab {
	for _, t := range DashboardTabs {
		if string(t) == s {
			return t
		}
	}
	return TabOverview
}
