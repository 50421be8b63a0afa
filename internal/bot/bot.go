package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propdesk/fundedbot/internal/cache"
	"github.com/propdesk/fundedbot/internal/firms"
	"github.com/propdesk/fundedbot/internal/keywords"
	"github.com/propdesk/fundedbot/internal/llm"
	"github.com/propdesk/fundedbot/internal/models"
	"github.com/propdesk/fundedbot/internal/router"
	"github.com/propdesk/fundedbot/internal/storage"
)

const followUp = "\n\n¿Algo más que quieras saber? 👇"

type Bot struct {
	api       *tgbotapi.BotAPI
	router    *router.Router
	cache     *cache.ResponseCache
	firms     *firms.Resolver
	storage   storage.Storage
	generator *llm.Generator
	logger    *zap.Logger
}

func New(token string, rt *router.Router, c *cache.ResponseCache, f *firms.Resolver, store storage.Storage, gen *llm.Generator, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:       api,
		router:    rt,
		cache:     c,
		firms:     f,
		storage:   store,
		generator: gen,
		logger:    logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	question := message.Text
	if question == "" {
		return
	}

	answer, markdown := b.answerQuestion(ctx, message.From.ID, question)
	if markdown {
		b.sendMarkdown(message.Chat.ID, answer)
	} else {
		b.sendMessage(message.Chat.ID, answer)
	}
}

// answerQuestion runs the full pipeline: route, try the canned answer,
// try the cache, and only then fall through to retrieval + generation.
// Canned answers are authored in MarkdownV2; generated ones are plain.
func (b *Bot) answerQuestion(ctx context.Context, userID int64, question string) (string, bool) {
	decision := b.router.Route(question, "")

	if decision.Bypass {
		answer := b.decorate(decision.Answer.Content, decision.Firm, true)
		b.record(ctx, userID, question, answer, decision)
		return answer, true
	}

	if hit, ok := b.cache.Get(question, decision.Firm); ok {
		b.logger.Info("cache hit",
			zap.String("tier", string(hit.Tier)),
			zap.String("firm", decision.Firm))
		return hit.Answer, false
	}
	b.logger.Info("cache miss", zap.String("firm", decision.Firm))

	answer, err := b.generateAnswer(ctx, question, decision)
	if err != nil {
		b.logger.Error("Failed to generate answer",
			zap.Error(err),
			zap.Int64("user_id", userID))
		return "⚠️ No pude generar una respuesta ahora mismo. Inténtalo de nuevo en unos minutos.", false
	}

	if decision.Cacheable {
		b.cache.Set(question, decision.Firm, answer, 0)
	}
	b.record(ctx, userID, question, answer, decision)
	return answer, false
}

func (b *Bot) generateAnswer(ctx context.Context, question string, decision models.RouteDecision) (string, error) {
	terms := keywords.Extract(question)

	var faqs []models.FAQ
	res := models.ClassificationResult{
		Type:       decision.Intent,
		Confidence: decision.Confidence,
	}
	if !b.router.ShouldBypassFAQ(res, decision.Firm) {
		var err error
		faqs, err = b.storage.SearchFAQs(ctx, terms, decision.Firm, storage.MaxFAQResults)
		if err != nil {
			return "", fmt.Errorf("faq search: %w", err)
		}
	}

	var plans []models.AccountPlan
	var firm *models.FirmRecord
	if decision.Firm != "" {
		if f, ok := b.firms.Get(decision.Firm); ok {
			firm = &f
		}
		var err error
		plans, err = b.storage.GetPlans(ctx, decision.Firm)
		if err != nil {
			return "", fmt.Errorf("plan lookup: %w", err)
		}
	}

	answer, err := b.generator.Answer(ctx, question, firm, faqs, plans)
	if err != nil {
		return "", err
	}
	return b.decorate(answer, decision.Firm, false) + followUp, nil
}

// decorate prepends the firm badge when the question resolved to a firm.
func (b *Bot) decorate(answer, firmSlug string, markdown bool) string {
	if firmSlug == "" {
		return answer
	}
	f, ok := b.firms.Get(firmSlug)
	if !ok {
		return answer
	}
	if markdown {
		return fmt.Sprintf("%s *%s*\n\n%s", f.Badge, escapeMarkdown(f.Name), answer)
	}
	return fmt.Sprintf("%s %s\n\n%s", f.Badge, f.Name, answer)
}

func (b *Bot) record(ctx context.Context, userID int64, question, answer string, decision models.RouteDecision) {
	msg := &models.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Intent:    string(decision.Intent),
		Firm:      decision.Firm,
		CreatedAt: time.Now(),
	}
	if err := b.storage.SaveMessage(ctx, msg); err != nil {
		b.logger.Error("Failed to save message",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.Int64("user_id", userID))
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "firms":
		b.handleFirms(message)
	case "stats":
		b.handleStats(message)
	case "history":
		b.handleHistory(ctx, message)
	default:
		b.sendMessage(message.Chat.ID, "Comando desconocido. Usa /help para ver los comandos disponibles.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `¡Bienvenido a FundedBot! 📊
Respondo preguntas sobre firmas de fondeo de futuros: precios, drawdown, retiros, plataformas y evaluaciones.

Escríbeme tu pregunta, por ejemplo: "¿Cuál es el drawdown máximo en Apex?"
Usa /help para ver todos los comandos.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Comandos disponibles:
/start - Iniciar el bot
/help - Mostrar esta ayuda
/firms - Ver las firmas soportadas
/stats - Estadísticas de la caché
/history - Tus últimas preguntas

Puedes preguntar sobre:
- Precios y planes de cuenta
- Reglas de drawdown
- Retiros y payouts
- Plataformas soportadas
- Procesos de evaluación`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleFirms(message *tgbotapi.Message) {
	response := "*Firmas soportadas:*\n"
	for _, f := range b.firms.All() {
		response += fmt.Sprintf("%s %s\n", f.Badge, escapeMarkdown(f.Name))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, response)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send firms message",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

func (b *Bot) handleStats(message *tgbotapi.Message) {
	stats := b.cache.Stats()
	response := fmt.Sprintf(
		"Caché: %d aciertos, %d fallos (%.0f%% de aciertos)\nExacta: %d | Semántica: %d | Precalculada: %d",
		stats.Hits, stats.Misses, stats.HitRate*100,
		stats.ExactSize, stats.SemanticSize, stats.StaticSize)
	b.sendMessage(message.Chat.ID, response)
}

func (b *Bot) handleHistory(ctx context.Context, message *tgbotapi.Message) {
	messages, err := b.storage.GetUserMessages(ctx, message.From.ID, 5)
	if err != nil {
		b.logger.Error("Failed to get user messages",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendMessage(message.Chat.ID, "⚠️ No pude recuperar tu historial.")
		return
	}

	if len(messages) == 0 {
		b.sendMessage(message.Chat.ID, "Todavía no has hecho ninguna pregunta.")
		return
	}

	response := "*Tus últimas preguntas:*\n\n"
	for _, m := range messages {
		response += fmt.Sprintf("_%s_\n", escapeMarkdown(m.Question))
		if m.Firm != "" {
			response += fmt.Sprintf("Firma: %s\n", escapeMarkdown(m.Firm))
		}
		response += "\n"
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, response)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send history message",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

// escapeMarkdown escapes the special characters of Telegram MarkdownV2.
func escapeMarkdown(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send markdown message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
