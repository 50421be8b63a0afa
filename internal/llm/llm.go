// Package llm generates the fallback answer for questions the router
// could not serve deterministically, embedding the retrieved FAQ and
// account-plan context into the prompt.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/propdesk/fundedbot/internal/models"
)

type Generator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewGenerator(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *Generator {
	return &Generator{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Answer produces a completion for a question using the retrieved rows as
// context. The firm may be empty for firm-agnostic questions.
func (g *Generator) Answer(ctx context.Context, question string, firm *models.FirmRecord, faqs []models.FAQ, plans []models.AccountPlan) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt(firm),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt(question, faqs, plans),
				},
			},
			MaxTokens:   g.maxTokens,
			Temperature: float32(g.temperature),
		},
	)
	if err != nil {
		g.logger.Error("Failed to get completion", zap.Error(err))
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func systemPrompt(firm *models.FirmRecord) string {
	var b strings.Builder
	b.WriteString("Eres un asistente experto en firmas de fondeo de futuros. Respondes en español.\n")
	b.WriteString("Reglas estrictas de formato:\n")
	b.WriteString("- Los precios siempre como $X/mes, nunca como porcentajes.\n")
	b.WriteString("- Usa viñetas cortas, sin párrafos largos.\n")
	b.WriteString("- Solo menciona firmas incluidas en el contexto; nunca recomiendes otras.\n")
	b.WriteString("- Si el contexto no contiene la respuesta, dilo claramente.\n")
	if firm != nil {
		fmt.Fprintf(&b, "La pregunta es sobre %s %s.\n", firm.Badge, firm.Name)
	}
	return b.String()
}

func userPrompt(question string, faqs []models.FAQ, plans []models.AccountPlan) string {
	var b strings.Builder
	if len(faqs) > 0 {
		b.WriteString("Preguntas frecuentes relevantes:\n")
		for _, f := range faqs {
			fmt.Fprintf(&b, "- P: %s\n  R: %s\n", f.Question, f.Answer)
		}
	}
	if len(plans) > 0 {
		b.WriteString("Planes de cuenta:\n")
		for _, p := range plans {
			fmt.Fprintf(&b, "- %s (%s): $%.0f/mes, drawdown %s, objetivo $%.0f\n",
				p.Name, p.Size, p.MonthlyPrice, p.DrawdownType, p.ProfitTarget)
		}
	}
	fmt.Fprintf(&b, "\nPregunta: %s", question)
	return b.String()
}
