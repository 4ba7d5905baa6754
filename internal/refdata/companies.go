package refdata

// The company pool, snapshotted from a public startup directory.
var companies = []Company{
	{"Stripe", "stripe.com"},
	{"Airbnb", "airbnb.com"},
	{"Dropbox", "dropbox.com"},
	{"Reddit", "reddit.com"},
	{"Twitch", "twitch.tv"},
	{"Instacart", "instacart.com"},
	{"DoorDash", "doordash.com"},
	{"Coinbase", "coinbase.com"},
	{"Gusto", "gusto.com"},
	{"Brex", "brex.com"},
	{"GitLab", "gitlab.com"},
	{"Rappi", "rappi.com"},
	{"Ginkgo Bioworks", "ginkgobioworks.com"},
	{"Faire", "faire.com"},
	{"Scale AI", "scale.com"},
	{"Retool", "retool.com"},
	{"Amplitude", "amplitude.com"},
	{"Segment", "segment.com"},
	{"Plaid", "plaid.com"},
	{"Checkr", "checkr.com"},
	{"Rippling", "rippling.com"},
	{"Lattice", "lattice.com"},
	{"Mixpanel", "mixpanel.com"},
	{"OpenSea", "opensea.io"},
	{"Verkada", "verkada.com"},
	{"Webflow", "webflow.com"},
	{"Airtable", "airtable.com"},
	{"Figma", "figma.com"},
	{"Notion", "notion.so"},
	{"Zapier", "zapier.com"},
}
