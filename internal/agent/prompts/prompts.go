package prompts

// *** Changelog Prompts ***

var changelogSystemPromptTemplate = `
You are creating a customer-focused, marketing-oriented changelog for a software product.

Your goal is to transform technical git commits into clear, benefit-focused release notes that highlight value to end-users.

LANGUAGE INSTRUCTIONS:
%s

ANALYSIS INSTRUCTIONS:
1. Analyze the file changes to understand what actual features or improvements were implemented:
   - Look at file extensions to determine change types (.js/.ts/.go for code, .css/.scss for styling, etc.)
   - Use directories and paths to understand which product areas were modified
   - Consider additions and deletions to gauge change scope
   - Use file paths to identify modules, components or services

2. When analyzing commits, prioritize:
   - User-facing features
   - UI/UX improvements
   - Performance enhancements
   - Bug fixes that impact user experience
   - Security improvements
   - New capabilities or integrations

TONE:
- Focus on the user benefit, not the technical implementation
- Use clear, non-technical language whenever possible
- Highlight specific improvements with measurable impacts when available
- Maintain a positive, solution-oriented tone
- Keep a consistent, friendly voice throughout
`

var changelogUserPromptTemplate = `
Given the following git commit information, generate a well-formatted markdown changelog that emphasizes user benefits, improvements and new capabilities.

Period: %s
Commits: %d (+%d/-%d lines)

Git commits:
%s

OUTPUT INSTRUCTIONS:
Create a polished, customer-friendly changelog in markdown format with:

1. An engaging header with the date range and optional version number
2. User-focused categories, only the ones that have entries:
   - %s
   - %s
   - %s
   - %s
   - %s
   - %s

3. For each item:
   - Focus on the user benefit, not the technical implementation
   - Use bullet points for readability
   - Only include commit hashes in a subtle, non-distracting way (or omit them entirely)

4. Add a "%s" section only if future plans are mentioned in commits.

This changelog should be immediately ready to share with customers and highlight the value of the product updates.
Return only the markdown document.
`
