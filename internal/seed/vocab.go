package seed

var firstNames = []string{
	"Ada", "Alan", "Grace", "Linus", "Margaret", "Dennis", "Barbara", "Ken",
	"Frances", "Tim", "Radia", "Vint", "Hedy", "John", "Katherine", "Edsger",
	"Sophie", "Marcus", "Priya", "Diego", "Amara", "Noah", "Yuki", "Elena",
}

var lastNames = []string{
	"Lovelace", "Turing", "Hopper", "Torvalds", "Hamilton", "Ritchie", "Liskov",
	"Thompson", "Allen", "Berners", "Perlman", "Cerf", "Lamarr", "McCarthy",
	"Johnson", "Dijkstra", "Wilson", "Chen", "Patel", "Garcia", "Okafor", "Kim",
}

var roles = []string{
	"Product Designer", "Marketing Director", "Backend Developer", "Frontend Developer",
	"UI/UX Designer", "Data Scientist", "Project Manager", "CEO", "CTO", "CFO",
	"Sales Representative", "Customer Success Manager", "Content Writer", "HR Manager",
	"Operations Director", "Business Analyst", "Growth Hacker", "Social Media Manager",
}

var companies = []string{
	"TechCorp", "DesignHub", "DataInsights", "CloudNine", "SoftSolutions",
	"MarketBoost", "GrowthGenius", "InnovateTech", "WebWizards", "AppArchitects",
	"CreativeMinds", "DigitalDynamo", "FutureFocus", "SmartSystems", "PeakPerformance",
}

var platforms = []string{
	"LinkedIn", "Twitter", "Instagram", "Facebook", "GitHub", "Dribbble", "Medium", "YouTube",
}

// meetingTitles are formatted with the contact's role.
var meetingTitles = []string{
	"%s Discussion",
	"Project Review",
	"Strategy Session",
	"Quarterly Planning",
	"Initial Consultation",
	"Product Demo",
	"Feedback Session",
}

var summarySentences = []string{
	"We walked through the current roadmap.",
	"Budget constraints came up more than once.",
	"They asked for a revised timeline by next week.",
	"The team is excited about the new direction.",
	"Several open questions remain on scope.",
	"We agreed to revisit pricing after the pilot.",
	"Hiring is their main concern this quarter.",
	"They shared feedback from their leadership team.",
	"Integration work is further along than expected.",
	"We identified two quick wins to tackle first.",
}

var taskTitles = []string{
	"Send follow-up notes from the call",
	"Prepare the quarterly review deck",
	"Share the updated proposal draft",
	"Introduce them to the design team",
	"Review the contract renewal terms",
	"Schedule the product walkthrough",
	"Collect feedback on the pilot",
	"Draft the partnership outline",
	"Confirm budget for next phase",
	"Send the onboarding checklist",
}

var financeDescriptions = []string{
	"Project payment",
	"Consultation fee",
	"Retainer",
	"Service invoice",
	"Product purchase",
	"Subscription renewal",
}

var contactChannels = []string{
	"Email exchange",
	"Phone call",
	"LinkedIn message",
	"Video call",
	"In-person meeting",
	"Text message",
}
