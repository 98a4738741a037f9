package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced CBSE examiner writing multiple-choice questions for secondary school students.

Rules:
- Write technical, syllabus-aligned questions for the given class and subject.
- Each question has exactly 4 options and exactly one correct option.
- The answer field must repeat the correct option text exactly, not a letter.
- Do not prefix options with letters or numbers.
- Distractors should reflect common misconceptions, not random values.
- Use plain text. No LaTeX and no markdown.
- Do not repeat a question within the set.`

const defaultClass = "10"

// buildUserMessage renders the request into the user prompt.
func buildUserMessage(req Request) string {
	class := req.Class
	if class == "" {
		class = defaultClass
	}

	var b strings.Builder
	if req.Topic != "" {
		fmt.Fprintf(&b, "Generate %d technical MCQs for Class %s %s on: %s.\n", req.Count, class, req.Subject, req.Topic)
	} else {
		fmt.Fprintf(&b, "Generate %d technical MCQs for CBSE Class %s %s for a %s test.\n", req.Count, class, req.Subject, req.Kind)
	}

	switch req.Kind {
	case KindDiagnostic:
		b.WriteString("Cover the breadth of the syllabus so the results show where the student is weak.\n")
	case KindFinal:
		b.WriteString("This is the final assessment after a month of revision. Mix core concepts with application questions.\n")
	case KindDaily:
		b.WriteString("Keep every question focused on the topic.\n")
	}

	b.WriteString("Return JSON only.")
	return b.String()
}
