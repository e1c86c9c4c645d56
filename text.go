package main

import "github.com/hemantsolanki/portfolio/internal/content"

var (
	AboutMe = `I turn messy operational data into decisions people trust. Over the last
four and a half years I have built reporting pipelines, cleaned up data that
nobody wanted to touch and automated the weekly spreadsheets that ate whole
afternoons.

Lately most of my work sits where **analytics meets AI**: small, focused tools
that summarize, classify and explain data so teams can act on it faster.`

	ProjectOne = `A Power BI and SQL reporting suite that replaced a dozen hand-built
Excel workbooks. Refresh time went from hours to minutes and every number now
traces back to a single validated source.`

	ProjectTwo = `A Python automation toolkit for recurring data-quality checks:
schema drift, duplicate detection and threshold alerts, posted straight to the
team channel.

` + "```python\nissues = checks.run(df, rules=RULES)\nnotify(issues)\n```"

	ProjectThree = `An AI text analyzer that takes free-form feedback and returns
sentiment, themes and a short summary. The live demo on this page talks to the
same relay.`

	ProjectFour = `This portfolio: a Go server with a Gemini relay, privacy-preserving
visitor analytics and a scroll-driven animation layer.`
)

var TerminalLines = []string{
	">>> import analytics, ai, automation",
	"",
	">>> name = 'Hemant Solanki'",
	">>> role = 'Senior Data Analyst | AI Developer'",
	"",
	">>> experience = 4.5  # years",
	"",
	">>> skills = [",
	"    'Data Accuracy & Quality',",
	"    'Business Intelligence',",
	"    'Python & SQL Automation',",
	"    'AI-powered Applications'",
	"  ]",
	"",
	">>> impact = {",
	"    'efficiency': '+60%',",
	"    'data_accuracy': '+30%',",
	"    'adoption': '+25%'",
	"  }",
	"",
	">>> print('Let's build something impactful with data..')",
}

func defaultSite() content.Site {
	return content.Site{
		Owner:   "Hemant Solanki",
		Role:    "Senior Data Analyst | AI Developer",
		Tagline: "Turning data into decisions, and decisions into automation.",
		About:   AboutMe,
		Stats: []content.Stat{
			{Label: "Reporting efficiency", Value: 60},
			{Label: "Data accuracy", Value: 30},
			{Label: "Tool adoption", Value: 25},
		},
		Experience: []content.Job{
			{
				Title:   "Senior Data Analyst",
				Company: "Enterprise Analytics",
				Period:  "2023 - Present",
				Points: []string{
					"Led the move from manual spreadsheet reporting to automated BI dashboards",
					"Built validation rules that raised data accuracy across monthly reporting by 30%",
					"Prototyped AI-assisted summaries of operational reports for leadership",
				},
			},
			{
				Title:   "Data Analyst",
				Company: "Operations Insights",
				Period:  "2020 - 2023",
				Points: []string{
					"Automated recurring SQL and Python workflows, cutting preparation time by 60%",
					"Partnered with business teams to define KPIs and drive dashboard adoption",
				},
			},
		},
		Projects: []content.Project{
			{Name: "BI Reporting Suite", Description: ProjectOne, Tags: []string{"Power BI", "SQL"}},
			{Name: "Data Quality Toolkit", Description: ProjectTwo, Tags: []string{"Python", "Automation"}},
			{Name: "AI Text Analyzer", Description: ProjectThree, Tags: []string{"Gemini", "NLP"}},
			{Name: "Portfolio", Description: ProjectFour, Tags: []string{"Go", "Gin", "GSAP"}},
		},
		Skills: []content.SkillGroup{
			{Name: "Analytics", Skills: []content.Skill{
				{Name: "SQL", Percent: 92},
				{Name: "Power BI", Percent: 88},
				{Name: "Excel", Percent: 90},
			}},
			{Name: "Engineering", Skills: []content.Skill{
				{Name: "Python", Percent: 85},
				{Name: "Automation", Percent: 82},
			}},
			{Name: "AI", Skills: []content.Skill{
				{Name: "Prompt design", Percent: 80},
				{Name: "LLM integration", Percent: 75},
			}},
		},
		Certifications: []content.Certification{
			{Name: "Google Data Analytics", Issuer: "Google", Year: "2021"},
			{Name: "Power BI Data Analyst Associate", Issuer: "Microsoft", Year: "2022"},
			{Name: "Generative AI Fundamentals", Issuer: "Google Cloud", Year: "2024"},
		},
		Thinking: []string{
			"Understand the decision the data has to support",
			"Validate the source before building on it",
			"Automate the repeatable parts",
			"Explain the result in plain language",
		},
		Contacts: []content.Contact{
			{Label: "Email", Value: "hemant.solanki@example.com", Category: "email", Email: "hemant.solanki@example.com"},
			{Label: "LinkedIn", Value: "in/hemantsolanki", Category: "social", URL: "https://www.linkedin.com/in/hemantsolanki"},
			{Label: "GitHub", Value: "hemantsolanki", Category: "social", URL: "https://github.com/hemantsolanki"},
		},
		TerminalLines: TerminalLines,
	}
}
