// Package casefile prepares the paperwork for a benefit-activation request:
// a requirements checklist and a report skeleton the clinician completes before submission.
package casefile

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
}

// CaseDetails is what the clinician enters for one case.
// Only the report date is mandatory; every other field has a placeholder.
type CaseDetails struct {
	Insurer    string `json:"insurer" validate:"max=200"`
	Trigger    string `json:"trigger" validate:"max=200"`
	Diagnosis  string `json:"diagnosis" validate:"max=500"`
	ReportDate string `json:"report_date" validate:"required,isodate"`
	Clinician  string `json:"clinician" validate:"max=200"`
	CaseID     string `json:"case_id" validate:"max=100"`
	Evolution  string `json:"evolution" validate:"max=20000"`
}

// Validate checks the details and names the first offending field.
func (d CaseDetails) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", fe.Field())
		case "isodate":
			return fmt.Errorf("%s must be a date in YYYY-MM-DD format, got %q", fe.Field(), fe.Value())
		default:
			return fmt.Errorf("%s is too long (max %s characters)", fe.Field(), fe.Param())
		}
	}
	return err
}

// BulletsFromMultiline turns non-blank lines into indented bullets.
// An empty text yields a single "(pending)" bullet.
func BulletsFromMultiline(text, indent string) string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, indent+ln)
		}
	}
	if len(lines) == 0 {
		return indent + "(pending)"
	}
	return strings.Join(lines, "\n")
}

func fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

var funcs = template.FuncMap{
	"fallback": fallback,
	"bullets":  BulletsFromMultiline,
}

var checklistTmpl = template.Must(template.New("checklist").Funcs(funcs).Parse(
	`- Case identification (folio: **{{fallback .CaseID "n/a"}}**), responsible clinician and date **{{.ReportDate}}**  
- Medical Act triggering the benefit: **{{fallback .Trigger "—"}}**  
- Primary diagnosis / reason: **{{fallback .Diagnosis "—"}}**  
- Evolution **changes only** with date (format *YYYY-MM-DD*):  
{{bullets .Evolution "  - "}}
- Attachments required by **{{fallback .Insurer "(define)"}}**:  
  - Medical order / discharge summary  
  - Signed clinical report (PDF)  
  - Supporting tests (if applicable)  
  - Insurer-specific certificates/templates  
- Verify **deadlines** and **format** (HIPAA/GDPR compliance)  
- Final **human review** (step 9) and submission log
`))

var draftTmpl = template.Must(template.New("draft").Funcs(funcs).Parse(
	`MEDICAL REPORT — Benefit activation
Insurance: {{fallback .Insurer "—"}}    |    Date: {{.ReportDate}}
Clinician: {{fallback .Clinician "—"}}    |    Case/Folio: {{fallback .CaseID "n/a"}}

1) Medical Act (trigger)
   - {{fallback .Trigger "—"}}

2) Primary diagnosis / reason
   - {{fallback .Diagnosis "—"}}

3) Evolution (changes only, each with date)
{{fallback .Evolution "- (to be completed by the clinician)"}}

4) Clinical rationale & supporting evidence
   - Key findings, attached exams, applicable guidelines.

5) Request to insurer
   - Coverage/benefit requested and estimated duration.

6) Compliance & privacy
   - Prepared under HIPAA/GDPR good practices.`))

// Checklist renders the suggested requirements checklist as Markdown.
func Checklist(d CaseDetails) (string, error) {
	return render(checklistTmpl, d)
}

// Draft renders the plain-text report skeleton.
func Draft(d CaseDetails) (string, error) {
	return render(draftTmpl, d)
}

func render(t *template.Template, d CaseDetails) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// Packet bundles both documents for one case.
type Packet struct {
	Checklist string `json:"checklist"`
	Draft     string `json:"draft"`
}

// Prepare renders the checklist and the draft together.
func Prepare(d CaseDetails) (*Packet, error) {
	checklist, err := Checklist(d)
	if err != nil {
		return nil, err
	}
	draft, err := Draft(d)
	if err != nil {
		return nil, err
	}
	return &Packet{Checklist: checklist, Draft: draft}, nil
}

// Markdown renders the packet as one Markdown document.
func (p *Packet) Markdown() string {
	var sb strings.Builder
	sb.WriteString("## Suggested checklist\n\n")
	sb.WriteString(p.Checklist)
	sb.WriteString("\n## Report draft (skeleton)\n\n```markdown\n")
	sb.WriteString(p.Draft)
	sb.WriteString("\n```\n")
	return sb.String()
}
