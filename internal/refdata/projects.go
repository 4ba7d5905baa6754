package refdata

// Project name patterns per workflow type. Placeholders in braces resolve
// against the word pools below; patterns were collected from public project
// templates and board names.

var projectPatterns = map[string][]string{
	"Engineering": {
		"{component} {version} {work_type}",
		"Q{quarter} {component} Improvements",
		"{component} - {eng_feature}",
		"{component} Migration",
		"{eng_feature} Implementation",
		"Technical Debt - {component}",
		"{component} Refactoring",
		"Infrastructure - {focus}",
		"{platform} Upgrade",
		"API {version} Development",
	},
	"Marketing": {
		"Q{quarter} {campaign} Campaign",
		"{channel} Marketing - {period}",
		"{event} Launch Campaign",
		"{offering} Go-to-Market",
		"Content Calendar - {period}",
		"{channel} Optimization",
		"Brand {initiative}",
		"{campaign} Execution",
		"{event} Event Planning",
		"Customer {program}",
	},
	"Product": {
		"{product_area} Development",
		"Q{quarter} Roadmap",
		"{product_area} Enhancements",
		"User Research - {research_focus}",
		"{product_area} Beta",
		"Product Discovery - {product_area}",
		"{initiative} Planning",
		"Customer Feedback - {period}",
		"{product_area} Specs",
		"Product Metrics - {product_area}",
	},
	"Operations": {
		"{process} Optimization",
		"Q{quarter} {department} Planning",
		"{biz_system} Implementation",
		"{process} Documentation",
		"{compliance_area} Compliance",
		"Vendor Management - {category}",
		"{ops_initiative} Rollout",
		"{department} Onboarding",
		"{process} Audit",
		"Cost Optimization - {compliance_area}",
	},
	"Design": {
		"Design System {version}",
		"UX Research - {research_focus}",
		"{ui_area} Redesign",
		"Visual Design - {period}",
		"UI Component Library",
		"{product_area} Design Sprint",
		"Brand Guidelines {version}",
		"Accessibility Audit",
		"Mobile App Design",
		"Design QA - {period}",
	},
}

var wordPools = map[string][]string{
	"component": {
		"Authentication", "API", "Database", "Frontend", "Backend", "Mobile",
		"Infrastructure", "Analytics", "Search", "Payments", "Notifications",
		"Dashboard", "Admin Panel", "User Management", "Reporting", "Integration",
	},
	"eng_feature": {
		"OAuth Integration", "Real-time Updates", "Caching Layer", "Load Balancing",
		"Error Handling", "Monitoring", "CI/CD Pipeline", "Security Audit",
		"Performance Optimization", "GraphQL API", "Microservices", "Containerization",
	},
	"version":   {"v1.0", "v1.5", "v2.0", "v2.3", "v3.0", "v3.1", "v4.2"},
	"work_type": {"Sprint", "Development", "Updates"},
	"quarter":   {"1", "2", "3", "4"},
	"focus":     {"Scalability", "Performance", "Security", "Reliability"},
	"platform":  {"AWS", "GCP", "Azure", "Kubernetes"},
	"campaign": {
		"Brand Awareness", "Lead Generation", "Product Launch", "Seasonal",
		"Holiday", "Webinar Series", "Email Marketing", "Social Media",
		"Content Marketing", "SEO", "Paid Ads", "Influencer",
	},
	"channel": {
		"Email", "Social Media", "Blog", "Video", "Podcast", "Webinar",
		"Events", "PR", "Partnerships", "Community",
	},
	"period": {
		"H1", "H2", "Q1", "Q2", "Q3", "Q4", "January", "February", "March",
		"April", "May", "June", "July", "August", "September", "October",
		"November", "December",
	},
	"event":      {"Product Launch", "Conference", "Webinar", "Summit"},
	"offering":   {"New Feature", "Platform", "Service"},
	"initiative": {"Refresh", "Redesign", "Guidelines", "Awareness"},
	"program":    {"Success", "Advocacy", "Retention", "Acquisition"},
	"product_area": {
		"Dashboard", "Onboarding", "Mobile App", "Integrations", "Analytics",
		"Collaboration", "Notifications", "Search", "Settings", "Admin Tools",
		"Reporting", "Export", "Templates", "Workflow", "Automation",
	},
	"research_focus": {"User Flows", "Information Architecture", "Usability"},
	"process": {
		"Hiring", "Onboarding", "Performance Review", "Budget Planning",
		"Procurement", "Facilities", "IT Support", "Security", "Compliance",
		"Training", "Travel", "Equipment", "Vendor", "Contract",
	},
	"department":      {"HR", "Finance", "IT", "Legal", "Operations"},
	"biz_system":      {"ERP", "CRM", "HRIS", "Expense Management"},
	"compliance_area": {"Security", "Privacy", "Financial", "HR"},
	"category":        {"Software", "Hardware", "Services"},
	"ops_initiative":  {"Tool", "Process", "Policy"},
	"ui_area":         {"Dashboard", "Onboarding", "Settings", "Navigation"},
}

// ProjectPatterns returns the name patterns for a workflow type; unknown
// types fall back to the Operations set.
func (Static) ProjectPatterns(workflowType string) []string {
	if p, ok := projectPatterns[workflowType]; ok {
		return p
	}
	return projectPatterns["Operations"]
}

// Pools exposes the placeholder word pools used to expand patterns.
func (Static) Pools() map[string][]string { return wordPools }
