package registry

// Standard exhibit ordering by visa type, mirroring professional petition
// assembly practice: administrative and identity documents first, criterion
// evidence in letter order, supporting documentation last.
var templates = map[string]*Template{
	"O-1A": {
		VisaType:    "O-1A",
		MinCriteria: 3,
		Sections: []Section{
			{
				Name: "Administrative Documents",
				ExampleExhibits: []string{
					"Table of Contents",
					"Form I-129 with O/P Supplement",
					"Form G-28 (if applicable)",
					"Form G-1450 (Credit Card Authorization)",
					"Form I-907 (Premium Processing)",
					"Filing Fee",
				},
			},
			{
				Name: "Beneficiary Documents",
				ExampleExhibits: []string{
					"Passport (Biographical Pages)",
					"Curriculum Vitae",
					"Degree/Credentials",
				},
			},
			{
				Name: "Petitioner Documents",
				ExampleExhibits: []string{
					"Petitioner Support Letter",
					"Petitioner Evidence (registration, financials)",
					"Employment Contract/Offer Letter",
				},
			},
			{
				Name:            "Criterion A - Awards",
				CriterionLetter: "A",
				ExampleExhibits: []string{"Award certificates", "Award significance documentation"},
			},
			{
				Name:            "Criterion B - Membership",
				CriterionLetter: "B",
				ExampleExhibits: []string{"Membership documentation", "Association requirements"},
			},
			{
				Name:            "Criterion C - Published Material",
				CriterionLetter: "C",
				ExampleExhibits: []string{"Media articles", "Publication credibility evidence"},
			},
			{
				Name:            "Criterion D - Judging",
				CriterionLetter: "D",
				ExampleExhibits: []string{"Judging invitations", "Panel documentation"},
			},
			{
				Name:            "Criterion E - Original Contributions",
				CriterionLetter: "E",
				ExampleExhibits: []string{"Contribution evidence", "Impact documentation"},
			},
			{
				Name:            "Criterion F - Authorship",
				CriterionLetter: "F",
				ExampleExhibits: []string{"Scholarly articles", "Citation evidence"},
			},
			{
				Name:            "Criterion G - Critical Employment",
				CriterionLetter: "G",
				ExampleExhibits: []string{"Employment evidence", "Organization reputation"},
			},
			{
				Name:            "Criterion H - High Remuneration",
				CriterionLetter: "H",
				ExampleExhibits: []string{"Salary documentation", "Wage comparisons"},
			},
			{
				Name:            "Supporting Documentation",
				ExampleExhibits: []string{"Expert letters", "Additional evidence"},
			},
		},
	},
	"P-1A": {
		VisaType:    "P-1A",
		MinCriteria: 2,
		Notes:       "P-1A has NO comparable evidence provision. All evidence must directly satisfy criteria.",
		Sections: []Section{
			{
				Name: "Administrative Documents",
				ExampleExhibits: []string{
					"Table of Contents",
					"Form I-129 with O/P Supplement",
					"Form G-28 (if applicable)",
					"Form G-1450",
					"Form I-907 (Premium Processing)",
					"Consultation Letter from Labor Organization",
				},
			},
			{
				Name: "Beneficiary Documents",
				ExampleExhibits: []string{
					"Passport (Biographical Pages)",
					"Curriculum Vitae / Athletic Resume",
					"Athletic Statistics/Records",
				},
			},
			{
				Name: "Team/Event Documents",
				ExampleExhibits: []string{
					"Contract with Team/Event",
					"Itinerary of Events",
					"Team Roster",
				},
			},
			{
				Name:            "International Recognition Evidence",
				CriterionLetter: "A",
				ExampleExhibits: []string{"International event documentation", "League recognition"},
			},
			{
				Name:            "Significant Achievements",
				CriterionLetter: "B",
				ExampleExhibits: []string{"Team achievements", "Championship records"},
			},
			{
				Name:            "Awards Documentation",
				CriterionLetter: "C",
				ExampleExhibits: []string{"Sports awards", "MVP awards", "Records"},
			},
			{
				Name:            "Ranking Evidence",
				CriterionLetter: "D",
				ExampleExhibits: []string{"Team rankings", "Individual rankings", "Statistics"},
			},
			{
				Name:            "Media Coverage",
				CriterionLetter: "E",
				ExampleExhibits: []string{"Press coverage", "Sports media articles"},
			},
			{
				Name:            "Supporting Documentation",
				ExampleExhibits: []string{"Expert letters from coaches/scouts", "Additional evidence"},
			},
		},
	},
	"EB-1A": {
		VisaType:    "EB-1A",
		MinCriteria: 3,
		Notes:       "EB-1A requires satisfaction of 3+ criteria AND final merits determination (Kazarian analysis)",
		Sections: []Section{
			{
				Name: "Administrative Documents",
				ExampleExhibits: []string{
					"Table of Contents",
					"Form I-140",
					"Form G-28 (if applicable)",
					"Form I-485 (if concurrent filing)",
					"Filing Fee",
				},
			},
			{
				Name: "Beneficiary Documents",
				ExampleExhibits: []string{
					"Passport (Biographical Pages)",
					"Birth Certificate",
					"Curriculum Vitae",
					"Degree/Credentials with Evaluation",
				},
			},
			{
				Name:            "Criterion A - Awards",
				CriterionLetter: "A",
				ExampleExhibits: []string{"Award documentation", "Award significance"},
			},
			{
				Name:            "Criterion B - Membership",
				CriterionLetter: "B",
				ExampleExhibits: []string{"Membership documentation"},
			},
			{
				Name:            "Criterion C - Published Material",
				CriterionLetter: "C",
				ExampleExhibits: []string{"Media articles about beneficiary"},
			},
			{
				Name:            "Criterion D - Judging",
				CriterionLetter: "D",
				ExampleExhibits: []string{"Judging documentation"},
			},
			{
				Name:            "Criterion E - Original Contributions",
				CriterionLetter: "E",
				ExampleExhibits: []string{"Contribution evidence", "Citations", "Impact"},
			},
			{
				Name:            "Criterion F - Authorship",
				CriterionLetter: "F",
				ExampleExhibits: []string{"Scholarly publications", "Citation analysis"},
			},
			{
				Name:            "Criterion H - Leading Role",
				CriterionLetter: "H",
				ExampleExhibits: []string{"Employment evidence", "Organization reputation"},
			},
			{
				Name:            "Criterion I - High Salary",
				CriterionLetter: "I",
				ExampleExhibits: []string{"Salary documentation", "Wage surveys"},
			},
			{
				Name:            "Supporting Documentation",
				ExampleExhibits: []string{"Expert letters", "Additional evidence"},
			},
		},
	},
	"O-1B": {
		VisaType:    "O-1B",
		MinCriteria: 3,
		Sections: []Section{
			{
				Name:            "Administrative Documents",
				ExampleExhibits: []string{"Table of Contents", "Form I-129", "Forms", "Fees"},
			},
			{
				Name:            "Beneficiary Documents",
				ExampleExhibits: []string{"Passport", "CV", "Credits/Filmography"},
			},
			{
				Name:            "Criterion A - Lead/Starring Role",
				CriterionLetter: "A",
				ExampleExhibits: []string{"Lead role evidence", "Production credits"},
			},
			{
				Name:            "Criterion B - Critical Reviews",
				CriterionLetter: "B",
				ExampleExhibits: []string{"Reviews", "Press coverage"},
			},
			{
				Name:            "Criterion C - Distinguished Reputation",
				CriterionLetter: "C",
				ExampleExhibits: []string{"Organization reputation", "Lead role evidence"},
			},
			{
				Name:            "Criterion D - Commercial Success",
				CriterionLetter: "D",
				ExampleExhibits: []string{"Box office", "Ratings", "Sales"},
			},
			{
				Name:            "Criterion E - Significant Recognition",
				CriterionLetter: "E",
				ExampleExhibits: []string{"Recognition from experts", "Industry awards"},
			},
			{
				Name:            "Criterion F - High Remuneration",
				CriterionLetter: "F",
				ExampleExhibits: []string{"Salary documentation"},
			},
			{
				Name:            "Supporting Documentation",
				ExampleExhibits: []string{"Expert letters", "Additional evidence"},
			},
		},
	},
}
