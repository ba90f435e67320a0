package ingestion

// SourceURLs is the fixed list of pages the knowledge base is built from.
var SourceURLs = []string{
	"https://www.ycombinator.com/",
	"https://www.ycombinator.com/companies",
	"https://www.ycombinator.com/jobs",
	"https://www.ycombinator.com/cofounder-matching",
	"https://www.ycombinator.com/library",
	"https://www.ycombinator.com/about",
	"https://www.ycombinator.com/internships",
	"https://www.ycombinator.com/contact",
	"https://www.ycombinator.com/demoday",
	"https://www.ycombinator.com/blog/startup-school",
	"https://www.ycombinator.com/companies/founders",
	"https://www.ycombinator.com/documents",
}
