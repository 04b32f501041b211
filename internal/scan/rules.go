package scan

import (
	"context"
	"regexp"

	"github.com/droverhq/drover/internal/ctxutil"
)

// Rule is a single regex rule applied to added diff lines.
type Rule struct {
	// Name identifies the rule in findings.
	Name string
	// Pattern is the compiled regex matched against each added line.
	Pattern *regexp.Regexp
	// Severity is assigned to findings produced by this rule.
	Severity Severity
	// Description explains what the rule looks for.
	Description string
}

// SecretRules detect credential material that must never be committed.
//
//nolint:gochecknoglobals // shared immutable rule set
var SecretRules = []Rule{
	{
		Name:        "anthropic-api-key",
		Pattern:     regexp.MustCompile(`sk-ant-api[0-9a-zA-Z\-_]{10,}`),
		Severity:    SeverityBlock,
		Description: "Anthropic API key",
	},
	{
		Name:        "openai-api-key",
		Pattern:     regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
		Severity:    SeverityBlock,
		Description: "OpenAI-style API key",
	},
	{
		Name:        "github-token",
		Pattern:     regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
		Severity:    SeverityBlock,
		Description: "GitHub token",
	},
	{
		Name:        "aws-access-key",
		Pattern:     regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity:    SeverityBlock,
		Description: "AWS access key ID",
	},
	{
		Name:        "private-key-block",
		Pattern:     regexp.MustCompile(`-----BEGIN\s+(RSA|EC|OPENSSH|PGP)?\s*PRIVATE KEY`),
		Severity:    SeverityBlock,
		Description: "private key material",
	},
	{
		Name:        "assigned-secret",
		Pattern:     regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key|token)\s*[:=]\s*['"][^'"]{8,}['"]`),
		Severity:    SeverityBlock,
		Description: "hardcoded credential assignment",
	},
	{
		Name:        "bearer-token",
		Pattern:     regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]{20,}`),
		Severity:    SeverityBlock,
		Description: "bearer token",
	},
}

// InjectionRules detect prompt-injection phrasing aimed at agents that will
// later read the committed content.
//
//nolint:gochecknoglobals // shared immutable rule set
var InjectionRules = []Rule{
	{
		Name:        "ignore-instructions",
		Pattern:     regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions`),
		Severity:    SeverityBlock,
		Description: "instruction override phrasing",
	},
	{
		Name:        "disregard-system",
		Pattern:     regexp.MustCompile(`(?i)disregard\s+(the\s+)?(system\s+prompt|your\s+instructions)`),
		Severity:    SeverityBlock,
		Description: "system prompt override phrasing",
	},
	{
		Name:        "role-hijack",
		Pattern:     regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|in)\s+`),
		Severity:    SeverityWarn,
		Description: "role reassignment phrasing",
	},
}

// URLRules flag external links for human review.
//
//nolint:gochecknoglobals // shared immutable rule set
var URLRules = []Rule{
	{
		Name:        "external-url",
		Pattern:     regexp.MustCompile(`https?://[^\s)'"\x60]+`),
		Severity:    SeverityWarn,
		Description: "external URL",
	},
}

// RegexScanner applies a rule set to the added lines of a diff.
type RegexScanner struct {
	name  string
	rules []Rule
}

// Ensure RegexScanner implements DiffScanner.
var _ DiffScanner = (*RegexScanner)(nil)

// NewRegexScanner creates a scanner with the given name and rules.
func NewRegexScanner(name string, rules []Rule) *RegexScanner {
	return &RegexScanner{name: name, rules: rules}
}

// NewSecretScanner creates the credential scanner.
func NewSecretScanner() *RegexScanner {
	return NewRegexScanner("secrets", SecretRules)
}

// NewInjectionScanner creates the prompt-injection scanner.
func NewInjectionScanner() *RegexScanner {
	return NewRegexScanner("injection", InjectionRules)
}

// NewURLScanner creates the external-URL scanner.
func NewURLScanner() *RegexScanner {
	return NewRegexScanner("urls", URLRules)
}

// Name identifies the scanner in reports.
func (s *RegexScanner) Name() string {
	return s.name
}

// Scan applies every rule to every added line. A line can produce one
// finding per rule; findings follow diff order, then rule order.
func (s *RegexScanner) Scan(ctx context.Context, diff string) ([]Finding, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, line := range addedLines(diff) {
		for _, rule := range s.rules {
			if rule.Pattern.MatchString(line.text) {
				findings = append(findings, Finding{
					Rule:        rule.Name,
					Severity:    rule.Severity,
					File:        line.file,
					Line:        line.text,
					Description: rule.Description,
				})
			}
		}
	}
	return findings, nil
}
