package descriptions

import "sort"

// Tool descriptions shown to MCP clients, with examples and workflows

const (
	ResumeExtractFileDescription = `Extract contact details, skills, experience and education from one PDF résumé.

**When to use:** A single résumé needs to be turned into structured fields for screening or import.

**Why it's useful:** Returns name, email, phone, skills, experience sentences and education sentences in one call. Unreadable or image-only files still produce a record with a status explaining what went wrong.

**Examples:**
• Screen a candidate: "Extract the fields from applicants/jane-doe.pdf"
• Check contact data: "Get the email and phone number from cv-2024.pdf"

**Common workflows:**
1. Screening: Extract file → Review skills and experience → Shortlist
2. Data entry: Extract file → Copy fields into an ATS

**Best practices:** Paths are resolved inside the configured directory. Fields that could not be located read "Not Found".`

	ResumeExtractDirectoryDescription = `Extract fields from every PDF résumé in a folder and optionally write them to a CSV file.

**When to use:** A batch of résumés needs to be tabulated, for example after a job posting closes.

**Why it's useful:** Every PDF directly inside the folder yields exactly one row, in file name order. Broken files are reported with status "failed" instead of stopping the run.

**Examples:**
• Tabulate applicants: "Extract all résumés in applicants/ into applicants.csv"
• Quick overview: "Summarize the résumés in the default folder"

**Common workflows:**
1. Batch screening: Extract directory → Open CSV in a spreadsheet → Filter by skills
2. Quality check: Extract directory → Review failed and no-text rows → Re-scan those files

**Best practices:** Leave directory empty to use the configured folder. The output file is overwritten when given.`

	ResumeAppendCSVDescription = `Extract one PDF résumé and append its record to a CSV file.

**When to use:** Résumés arrive one at a time and should accumulate in a single spreadsheet.

**Why it's useful:** The header is written only when the file is new or empty, so repeated calls build one clean table.

**Examples:**
• Intake: "Add new-applicant.pdf to parsed_resume_data.csv"
• Rolling log: "Append cv.pdf to hiring/2024.csv"

**Common workflows:**
1. Continuous intake: Receive résumé → Append CSV → Repeat
2. Corrections: Re-append a fixed résumé → Deduplicate in the spreadsheet

**Best practices:** Records are never deduplicated. Uses the configured output file when none is given.`

	ResumeValidateFileDescription = `Check whether a file is a readable PDF before extracting it.

**When to use:** A résumé came back with status "failed" or the file source is untrusted.

**Why it's useful:** Runs the same size and header checks as extraction, then a structural validation, and explains what is wrong in plain words.

**Examples:**
• Triage: "Why did broken.pdf fail?"
• Intake check: "Is upload-17.pdf a real PDF?"

**Best practices:** Image-only scans pass validation but still produce status "no_text".`

	ResumeServerInfoDescription = `Show server configuration, available tools and the résumés found in the configured folder.

**When to use:** At the start of a session to learn where files are read from and how fields are extracted.

**Why it's useful:** Reports the root directory, text backend, skills strategy, phone normalization and CSV layout in one place.

**Examples:**
• Orientation: "What can the résumé server do?"
• Discovery: "Which résumés are available?"

**Best practices:** Call this first, then use the listed file names with the extraction tools.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"resume_extract_file":      ResumeExtractFileDescription,
	"resume_extract_directory": ResumeExtractDirectoryDescription,
	"resume_append_csv":        ResumeAppendCSVDescription,
	"resume_server_info":       ResumeServerInfoDescription,
	"resume_validate_file":     ResumeValidateFileDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the registered tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
