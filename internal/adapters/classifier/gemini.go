package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	portssvc "github.com/finbooks/finbooks_app/internal/core/ports/services"
)

// geminiClassifier suggests a chart-of-accounts category for one bank
// transaction via Gemini. It expects the model to return a STRICT JSON
// object; anything else is an error the caller degrades from.
type geminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates a Gemini-backed classifier. The API key is read
// from the environment by the genai client (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewGeminiClassifier(ctx context.Context, model string) (portssvc.TransactionClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiClassifier{client: client, model: model}, nil
}

var _ portssvc.TransactionClassifier = (*geminiClassifier)(nil)

// classifierReply mirrors the JSON object the prompt demands from the model.
type classifierReply struct {
	AccountName string `json:"account_name"`
	Category    string `json:"category"`
	Memo        string `json:"memo"`
	Confidence  int    `json:"confidence"`
}

func (c *geminiClassifier) Classify(ctx context.Context, req portssvc.ClassifierRequest) (*portssvc.ClassifierResult, error) {
	prompt := buildPrompt(req)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("classifier generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("classifier returned empty response")
	}

	var reply classifierReply
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &reply); err != nil {
		return nil, fmt.Errorf("classifier returned invalid JSON: %w", err)
	}
	if reply.Confidence < 0 {
		reply.Confidence = 0
	}
	if reply.Confidence > 100 {
		reply.Confidence = 100
	}

	return &portssvc.ClassifierResult{
		AccountName: reply.AccountName,
		Category:    reply.Category,
		Memo:        reply.Memo,
		Confidence:  reply.Confidence,
	}, nil
}

func buildPrompt(req portssvc.ClassifierRequest) string {
	var b strings.Builder

	b.WriteString("You are a bookkeeping assistant categorizing one bank transaction for a small business.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Suggest the best matching account from the candidate list below.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output a single JSON object.\n\n")
	b.WriteString("The object must have these fields:\n")
	b.WriteString("- \"account_name\": string, exactly one of the candidate account names, or \"\" if none fits\n")
	b.WriteString("- \"category\": string, a short human-readable category label\n")
	b.WriteString("- \"memo\": string, a one-line note for the bookkeeper\n")
	b.WriteString("- \"confidence\": integer 0-100\n\n")

	fmt.Fprintf(&b, "Transaction:\n- description: %q\n- amount: %s (negative means money OUT)\n- source account: %q\n\n",
		req.Description, req.Amount.String(), req.SourceAccountName)

	if len(req.CandidateAccounts) > 0 {
		b.WriteString("Candidate accounts:\n")
		for _, name := range req.CandidateAccounts {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(req.Examples) > 0 {
		b.WriteString("Previously categorized transactions from this business:\n")
		for _, ex := range req.Examples {
			fmt.Fprintf(&b, "- %q -> %s\n", ex.Description, ex.Category)
		}
		b.WriteString("\n")
	}

	b.WriteString("Rules:\n")
	b.WriteString("- Never invent an account name that is not in the candidate list.\n")
	b.WriteString("- Return ONLY valid raw JSON.\n")
	b.WriteString("- Do NOT wrap the response in code fences.\n")
	b.WriteString("- Do NOT use ```json or any Markdown.\n")
	b.WriteString("- Output must begin with \"{\" and end with \"}\".\n")

	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
