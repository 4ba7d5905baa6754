// Package refdata holds the static, pre-fetched mapping tables the
// generator draws identity data from: company pools, census name frequency
// tables, job titles, and naming templates. Tables never change mid-run.
package refdata

import (
	"strings"

	"workseed/internal/domain"
)

type Company struct {
	Name   string
	Domain string
}

// WeightedName pairs a name with its relative frequency.
type WeightedName struct {
	Name   string
	Weight float64
}

// Provider is the reference-data surface the generator consumes. Static is
// the shipped implementation; tests may swap in smaller tables.
type Provider interface {
	Companies() []Company
	FirstNames() []WeightedName
	LastNames() []WeightedName
	ProjectPatterns(workflowType string) []string
	Pools() map[string][]string
}

// Static serves the embedded tables.
type Static struct{}

func (Static) Companies() []Company { return companies }

type FieldSpec struct {
	Name    string
	Type    domain.FieldType
	Options []string
}

// StandardFields is the custom field catalog every generated org gets.
var StandardFields = []FieldSpec{
	{Name: "Priority", Type: domain.FieldEnum, Options: []string{"Critical", "High", "Medium", "Low"}},
	{Name: "Effort", Type: domain.FieldEnum, Options: []string{"XS", "S", "M", "L", "XL"}},
	{Name: "Status", Type: domain.FieldEnum, Options: []string{"Not Started", "In Progress", "Blocked", "In Review", "Done"}},
	{Name: "Story Points", Type: domain.FieldNumber},
	{Name: "Sprint", Type: domain.FieldText},
}

var CommonTags = []string{
	"bug", "feature", "enhancement", "urgent", "blocked",
	"needs-review", "documentation", "technical-debt", "customer-request",
	"security", "performance", "ux", "backend", "frontend",
}

var TagColors = []string{"#ff5733", "#33ff57", "#3357ff", "#ff33a1", "#a133ff", "#33fff5"}

var OptionColors = []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff"}

var sectionTemplates = map[string][]string{
	"Engineering": {"Backlog", "To Do", "In Progress", "In Review", "Done"},
	"Marketing":   {"Ideas", "Planning", "In Production", "Review", "Published"},
	"Product":     {"Discovery", "Prioritized", "In Development", "Testing", "Shipped"},
	"Design":      {"Backlog", "To Do", "In Progress", "Review", "Done"},
	"Operations":  {"New Requests", "In Progress", "Waiting", "Done"},
}

var defaultSections = []string{"To Do", "In Progress", "Done"}

// Sections returns the ordered section names for a workflow type.
func Sections(workflowType string) []string {
	if s, ok := sectionTemplates[workflowType]; ok {
		return s
	}
	return defaultSections
}

type AttachmentType struct {
	MIME       string
	Extensions []string
}

var AttachmentTypes = []AttachmentType{
	{"application/pdf", []string{".pdf"}},
	{"image/png", []string{".png"}},
	{"image/jpeg", []string{".jpg", ".jpeg"}},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []string{".docx"}},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []string{".xlsx"}},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", []string{".pptx"}},
	{"text/plain", []string{".txt"}},
	{"application/zip", []string{".zip"}},
}

var jobTitles = map[string][]string{
	"Engineering": {
		"Senior Software Engineer", "Software Engineer", "Staff Engineer",
		"Principal Engineer", "Engineering Manager", "Tech Lead",
		"Senior Backend Engineer", "Senior Frontend Engineer", "DevOps Engineer",
		"Data Engineer", "ML Engineer", "QA Engineer", "Security Engineer",
	},
	"Product": {
		"Product Manager", "Senior Product Manager", "Director of Product",
		"VP of Product", "Product Lead", "Associate Product Manager",
		"Technical Product Manager", "Group Product Manager",
	},
	"Design": {
		"Product Designer", "Senior Product Designer", "UX Researcher",
		"Design Lead", "Head of Design", "Brand Designer", "Visual Designer",
		"UX Writer", "Design Systems Designer",
	},
	"Marketing": {
		"Marketing Manager", "Content Marketing Manager", "Growth Marketing Manager",
		"Product Marketing Manager", "Brand Manager", "Demand Generation Manager",
		"Marketing Director", "VP of Marketing", "Marketing Coordinator",
	},
	"Sales": {
		"Account Executive", "Senior Account Executive", "Sales Development Rep",
		"Sales Manager", "VP of Sales", "Sales Engineer", "Account Manager",
		"Business Development Manager", "Sales Operations Manager",
	},
	"Operations": {
		"Operations Manager", "Operations Coordinator", "Chief of Staff",
		"Business Operations Manager", "VP of Operations", "Program Manager",
		"Project Manager", "Operations Analyst",
	},
	"HR": {
		"HR Manager", "Recruiter", "Senior Recruiter", "People Operations Manager",
		"HR Business Partner", "Talent Acquisition Manager", "VP of People",
		"People Operations Coordinator",
	},
	"Finance": {
		"Financial Analyst", "Senior Financial Analyst", "Controller",
		"CFO", "Finance Manager", "Accounting Manager", "Finance Director",
	},
}

// JobTitles returns the title pool for a department.
func JobTitles(department string) []string {
	if t, ok := jobTitles[department]; ok {
		return t
	}
	return []string{"Team Member"}
}

// SeniorTitle reports titles that receive the assignment weight boost.
func SeniorTitle(title string) bool {
	for _, marker := range []string{"Senior", "Staff", "Principal", "Lead", "Director", "VP", "Head", "Chief", "CFO", "Manager"} {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

var teamIdentifiers = map[string][]string{
	"Engineering": {"Platform", "Backend", "Frontend", "Mobile", "Infrastructure", "Data", "ML", "Security", "DevOps", "QA"},
	"Product":     {"Core", "Growth", "Platform", "Enterprise", "Consumer"},
	"Design":      {"Product Design", "Brand", "UX Research"},
	"Marketing":   {"Growth", "Brand", "Content", "Demand Gen", "Product Marketing"},
	"Sales":       {"Enterprise", "SMB", "Inside Sales", "Sales Ops"},
}

// TeamIdentifier names the i-th team of a department.
func TeamIdentifier(department string, i int) string {
	ids := teamIdentifiers[department]
	if i < len(ids) {
		return ids[i]
	}
	return ""
}

var teamDescriptions = map[string]string{
	"Engineering": "Responsible for building and maintaining our products",
	"Product":     "Defines product strategy and roadmap",
	"Design":      "Creates user experiences and visual design",
	"Marketing":   "Drives customer acquisition and brand awareness",
	"Sales":       "Acquires new customers and grows revenue",
	"Operations":  "Manages internal processes and operations",
	"HR":          "Supports employee experience and culture",
	"Finance":     "Manages financial planning and operations",
}

func TeamDescription(department string) string {
	return teamDescriptions[department]
}
