package workflow

// AgentInfo describes one agent of the external analysis pipeline.
type AgentInfo struct {
	ID          string
	Name        string
	Description string
}

// catalog lists every agent the external pipeline knows, in execution order.
var catalog = []AgentInfo{
	{"market", "Market Analyst", "Technical and market trend analysis"},
	{"social", "Social Media Analyst", "Social sentiment and social media analysis"},
	{"news", "News Analyst", "News sentiment and news-based analysis"},
	{"fundamentals", "Fundamentals Analyst", "Financial fundamentals and ratio analysis"},
	{"bull", "Bull Researcher", "Bullish thesis and upside potential research"},
	{"bear", "Bear Researcher", "Bearish thesis and downside risk research"},
	{"trader", "Trader", "Trade execution and strategy recommendations"},
	{"risky", "Risky Debater", "Aggressive/risky perspective on risk management"},
	{"neutral", "Neutral Debater", "Balanced perspective on risk management"},
	{"safe", "Safe Debater", "Conservative/safe perspective on risk management"},
}

// Agents returns the full catalog.
func Agents() []AgentInfo {
	out := make([]AgentInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an agent by id.
func Lookup(id string) (AgentInfo, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return AgentInfo{}, false
}

// DefaultAgents is the set run when a workflow names none.
func DefaultAgents() []string {
	return []string{"market", "fundamentals", "news"}
}
