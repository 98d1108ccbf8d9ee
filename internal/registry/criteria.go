package registry

// Criterion definitions per visa type in letter order. Keywords drive the
// rule-based classifier; order decides ties (first defined wins).
var criteria = map[string][]Criterion{
	"O-1A": {
		{Letter: "A", Name: "Awards - Nationally or internationally recognized prizes/awards",
			Keywords: []string{"award", "prize", "winner", "recipient", "honor", "medal", "trophy"}},
		{Letter: "B", Name: "Membership - Membership in associations requiring outstanding achievements",
			Keywords: []string{"member", "association", "organization", "society", "fellow", "elected"}},
		{Letter: "C", Name: "Published Material - Published material about the beneficiary",
			Keywords: []string{"article", "interview", "media", "publication", "press", "news", "featured"}},
		{Letter: "D", Name: "Judging - Participation as a judge of others' work",
			Keywords: []string{"judge", "panel", "evaluate", "referee", "review", "jury", "selection"}},
		{Letter: "E", Name: "Original Contributions - Original scientific/scholarly/business contributions",
			Keywords: []string{"patent", "invention", "innovation", "contribution", "original", "discovery"}},
		{Letter: "F", Name: "Authorship - Authorship of scholarly articles",
			Keywords: []string{"journal", "publication", "research", "paper", "academic", "peer-reviewed"}},
		{Letter: "G", Name: "Critical Employment - Employment in critical/essential capacity",
			Keywords: []string{"employment", "position", "role", "organization", "lead", "director", "executive"}},
		{Letter: "H", Name: "High Remuneration - High salary or remuneration",
			Keywords: []string{"salary", "compensation", "pay", "contract", "remuneration", "earnings"}},
	},
	"O-1B": {
		{Letter: "A", Name: "Lead/Starring Role - Performed in lead/starring role in productions",
			Keywords: []string{"lead", "star", "principal", "featured", "headliner"}},
		{Letter: "B", Name: "Critical Reviews - Critical reviews or other published materials",
			Keywords: []string{"review", "critic", "acclaim", "praised", "recognized"}},
		{Letter: "C", Name: "Lead Role Reputation - Lead role for organizations with distinguished reputation",
			Keywords: []string{"distinguished", "renowned", "prominent", "reputation"}},
		{Letter: "D", Name: "Commercial Success - Record of major commercial or critically acclaimed successes",
			Keywords: []string{"box office", "sales", "revenue", "commercial", "success"}},
		{Letter: "E", Name: "Significant Recognition - Significant recognition from experts/organizations",
			Keywords: []string{"award", "nomination", "honor", "recognition"}},
		{Letter: "F", Name: "High Remuneration - High salary or remuneration",
			Keywords: []string{"salary", "compensation", "pay", "contract", "fee"}},
	},
	"P-1A": {
		{Letter: "A", Name: "International Recognition - Internationally recognized team/event",
			Keywords: []string{"national", "team", "international", "competition", "country"}},
		{Letter: "B", Name: "Team Achievements - Significant team achievements",
			Keywords: []string{"achievement", "championship", "champion", "title", "record"}},
		{Letter: "C", Name: "Awards - Sports awards or prizes",
			Keywords: []string{"award", "honor", "medal", "trophy", "mvp"}},
		{Letter: "D", Name: "Ranking - Team/individual ranking",
			Keywords: []string{"ranking", "ranked", "position", "standings", "world"}},
		{Letter: "E", Name: "Media - Significant media coverage",
			Keywords: []string{"media", "press", "article", "coverage", "news"}},
	},
	"EB-1A": {
		{Letter: "A", Name: "Awards - Lesser nationally or internationally recognized prizes",
			Keywords: []string{"award", "prize", "internationally", "nationally", "recognized"}},
		{Letter: "B", Name: "Membership - Membership in associations requiring outstanding achievements",
			Keywords: []string{"member", "association", "outstanding", "achievements"}},
		{Letter: "C", Name: "Published Material - Published material about the alien",
			Keywords: []string{"article", "published", "media", "about", "work"}},
		{Letter: "D", Name: "Judging - Participation as judge of others' work",
			Keywords: []string{"judge", "evaluate", "panel", "review"}},
		{Letter: "E", Name: "Original Contributions - Original contributions of major significance",
			Keywords: []string{"contribution", "major", "significance", "field"}},
		{Letter: "F", Name: "Authorship - Authorship of scholarly articles",
			Keywords: []string{"scholarly", "articles", "professional", "publications"}},
		{Letter: "G", Name: "Artistic Exhibitions - Display of work at artistic exhibitions",
			Keywords: []string{"exhibition", "display", "showcase", "artistic"}},
		{Letter: "H", Name: "Leading Role - Performed in leading role for distinguished organizations",
			Keywords: []string{"leading", "critical", "role", "organization"}},
		{Letter: "I", Name: "High Remuneration - Commanded high salary or remuneration",
			Keywords: []string{"high", "salary", "remuneration", "compensation"}},
		{Letter: "J", Name: "Commercial Success - Commercial successes in performing arts",
			Keywords: []string{"commercial", "success", "performing", "sales"}},
	},
}

// Document archetype table, matched independently of criterion outcome.
var documentTypes = []DocumentType{
	{Tag: "passport", Keywords: []string{"passport", "travel document", "biographical page"}},
	{Tag: "cv", Keywords: []string{"curriculum vitae", "cv", "resume", "bio"}},
	{Tag: "award_certificate", Keywords: []string{"award", "certificate", "prize", "recognition", "trophy", "medal", "honor"}},
	{Tag: "media", Keywords: []string{"article", "news", "press", "publication", "interview", "feature"}},
	{Tag: "membership", Keywords: []string{"membership", "member", "association", "society", "organization"}},
	{Tag: "judging", Keywords: []string{"judge", "jury", "panel", "review", "evaluate", "referee"}},
	{Tag: "scholarly", Keywords: []string{"publication", "journal", "research", "paper", "study", "abstract"}},
	{Tag: "employment", Keywords: []string{"contract", "employment", "offer letter", "position", "role"}},
	{Tag: "salary", Keywords: []string{"salary", "compensation", "remuneration", "pay", "wage", "earnings"}},
	{Tag: "expert_letter", Keywords: []string{"letter", "support", "recommendation", "reference", "expert"}},
	{Tag: "form", Keywords: []string{"form", "i-129", "i-907", "g-28", "uscis", "petition"}},
}
