// Package evaluation turns the eligible-candidate set into an LLM chat
// answer. The agent builds one prompt from the role, the candidates'
// interview data, and the running conversation, and returns the model's
// free-text reply.
package evaluation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gftan/agentic-recruiter/internal/llm"
	"github.com/gftan/agentic-recruiter/internal/types"
)

// NoEligibleCandidatesMessage is returned without calling the model
// when the active evaluation set is empty.
const NoEligibleCandidatesMessage = "No candidates are currently eligible for evaluation. To use the Evaluation Chat:\n\n" +
	"1. Move candidates to the **Evaluation** column (from Follow-up)\n" +
	"2. Complete their interviews (record or upload the screening interview)\n\n" +
	"Only candidates in the Evaluation column with completed interviews can be evaluated."

// historyWindow bounds how much of the conversation is replayed into
// the prompt.
const historyWindow = 10

// CandidateContext pairs a candidate with its interview record for
// prompt construction.
type CandidateContext struct {
	Candidate types.Candidate
	Interview *types.Interview
}

// Input is everything the agent needs to answer one question.
type Input struct {
	Question   string
	Role       types.Role
	Candidates []CandidateContext
	History    []types.Message
}

// Agent answers evaluation questions over a role's eligible candidates.
type Agent struct {
	client llm.Client
	logger *zap.Logger
}

// New creates an evaluation agent.
func New(client llm.Client, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{client: client, logger: logger}
}

// Evaluate answers the question against the provided candidates. An
// empty candidate set short-circuits to the canned guidance message.
func (a *Agent) Evaluate(ctx context.Context, in Input) (string, error) {
	if len(in.Candidates) == 0 {
		return NoEligibleCandidatesMessage, nil
	}

	prompt := buildPrompt(in)
	a.logger.Debug("evaluating candidates",
		zap.String("role", in.Role.Title),
		zap.Int("candidates", len(in.Candidates)),
		zap.Int("history", len(in.History)))

	out, err := a.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("evaluation request failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func buildPrompt(in Input) string {
	var sb strings.Builder

	sb.WriteString("You are an expert recruiter evaluating candidates for a role. ")
	sb.WriteString("Answer the question using only the data below.\n\n")

	sb.WriteString("Role: ")
	sb.WriteString(in.Role.Title)
	sb.WriteString("\n")
	if len(in.Role.EvaluationCriteria) > 0 {
		sb.WriteString("Evaluation Criteria: ")
		sb.WriteString(strings.Join(in.Role.EvaluationCriteria, ", "))
		sb.WriteString("\n")
	}

	names := make([]string, 0, len(in.Candidates))
	for _, cc := range in.Candidates {
		names = append(names, cc.Candidate.Name)
	}
	sb.WriteString("Candidate Names: ")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "CANDIDATE DATA (%d candidates):\n", len(in.Candidates))
	for i, cc := range in.Candidates {
		writeCandidateBlock(&sb, i+1, cc)
	}

	if history := trimHistory(in.History); len(history) > 0 {
		sb.WriteString("\nPREVIOUS CONVERSATION (context for follow-up questions):\n")
		for _, msg := range history {
			label := "User"
			if msg.Role == types.MessageRoleAssistant {
				label = "Assistant"
			}
			fmt.Fprintf(&sb, "%s: %s\n", label, msg.Content)
		}
	}

	sb.WriteString("\nQUESTION: ")
	sb.WriteString(in.Question)
	sb.WriteString("\n\n")
	sb.WriteString("Instructions:\n")
	sb.WriteString("- Always refer to candidates by their exact names, never by position.\n")
	sb.WriteString("- Reference specific skills, experience, and interview findings.\n")
	sb.WriteString("- When interview data includes fit scores or recommendations, cite them.\n")
	sb.WriteString("- Compare candidates directly when the question asks for it.\n")

	return sb.String()
}

func writeCandidateBlock(sb *strings.Builder, idx int, cc CandidateContext) {
	c := cc.Candidate
	fmt.Fprintf(sb, "\n--- Candidate %d: %s ---\n", idx, c.Name)
	if c.Summary != "" {
		fmt.Fprintf(sb, "Summary: %s\n", c.Summary)
	}
	if len(c.Skills) > 0 {
		fmt.Fprintf(sb, "Skills: %s\n", strings.Join(c.Skills, ", "))
	}
	if c.Experience != "" {
		fmt.Fprintf(sb, "Experience: %s\n", c.Experience)
	}

	iv := cc.Interview
	if iv == nil {
		return
	}
	if iv.Summary != "" {
		fmt.Fprintf(sb, "Interview Summary: %s\n", iv.Summary)
	}
	if len(iv.Strengths) > 0 {
		fmt.Fprintf(sb, "Strengths: %s\n", strings.Join(iv.Strengths, ", "))
	}
	if len(iv.Concerns) > 0 {
		fmt.Fprintf(sb, "Concerns: %s\n", strings.Join(iv.Concerns, ", "))
	}
	if iv.FitScore != nil {
		fmt.Fprintf(sb, "Fit Score: %s/100\n", strconv.Itoa(*iv.FitScore))
	}
	if iv.Recommendation != "" {
		fmt.Fprintf(sb, "Recommendation: %s\n", iv.Recommendation)
	}
}

func trimHistory(history []types.Message) []types.Message {
	if len(history) <= historyWindow {
		return history
	}
	return history[len(history)-historyWindow:]
}
