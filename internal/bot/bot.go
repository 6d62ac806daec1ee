package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lifelog/internal/classifier"
	"lifelog/internal/logger"
	"lifelog/internal/model"
	"lifelog/internal/repository"
	"lifelog/internal/service"
)

const (
	recentNotesLimit = 10
	searchNotesLimit = 8
)

// Bot aggregates the Telegram API with the ingest and summary services.
type Bot struct {
	api        *tgbotapi.BotAPI
	userRepo   *repository.UserRepository
	noteRepo   *repository.NoteRepository
	ingest     *service.IngestService
	summarySvc *service.SummaryService
	metrics    *Metrics
	log        *logger.Logger
}

func New(
	token string,
	userRepo *repository.UserRepository,
	noteRepo *repository.NoteRepository,
	ingest *service.IngestService,
	summarySvc *service.SummaryService,
	metrics *Metrics,
	log *logger.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info("bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:        api,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		ingest:     ingest,
		summarySvc: summarySvc,
		metrics:    metrics,
		log:        log.With("service", "bot"),
	}, nil
}

// Start begins polling updates until ctx is cancelled. Each update is
// handled on its own goroutine; a failure on one message never affects
// the next.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		go b.HandleUpdate(ctx, update)
	}

	return nil
}

// HandleUpdate dispatches one Telegram update. Shared by the polling
// loop and the webhook endpoint.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.Chat.IsPrivate() {
		return
	}
	if err := b.handleMessage(ctx, msg); err != nil {
		b.log.Error("handle message", "telegram_id", msg.From.ID, "error", err.Error())
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.IsCommand() {
		b.metrics.CommandsProcessed.WithLabelValues(msg.Command()).Inc()
		return b.handleCommand(ctx, msg)
	}
	return b.handleText(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "notes":
		return b.handleNotes(ctx, msg)
	case "summary":
		return b.handleSummary(ctx, msg)
	case "profile":
		return b.handleProfile(ctx, msg)
	case "setgoal":
		return b.handleSetGoal(ctx, msg)
	case "setweight":
		return b.handleSetWeight(ctx, msg)
	case "settarget":
		return b.handleSetTarget(ctx, msg)
	default:
		return b.sendHTML(msg.Chat.ID, "Unknown command. See /help for what I can do.")
	}
}

// handleText routes free text through the classify-validate-persist
// flow and renders the outcome.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		// Rejected before the classifier ever runs.
		return b.sendHTML(msg.Chat.ID, "Send me some text to log, or /help for examples.")
	}

	b.metrics.MessagesProcessed.Inc()
	b.sendTyping(msg.Chat.ID)

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	started := time.Now()
	outcome, err := b.ingest.Process(ctx, user, text)
	b.metrics.ClassifyDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		return b.replyError(msg.Chat.ID, msg.From.ID, err)
	}

	b.metrics.ClassificationsTotal.WithLabelValues(string(outcome.Kind)).Inc()

	switch outcome.Kind {
	case classifier.KindAnswer:
		// Nothing persisted; relay the answer as plain text.
		return b.sendPlain(msg.Chat.ID, "💬 "+outcome.Answer)
	case classifier.KindNote:
		b.metrics.RecordsPersisted.WithLabelValues("notes").Inc()
		return b.sendHTML(msg.Chat.ID, formatNoteConfirmation(outcome))
	case classifier.KindFood:
		b.metrics.RecordsPersisted.WithLabelValues("food_logs").Inc()
		return b.sendHTML(msg.Chat.ID, formatFoodConfirmation(outcome))
	case classifier.KindWorkout:
		b.metrics.RecordsPersisted.WithLabelValues("workouts").Inc()
		return b.sendHTML(msg.Chat.ID, formatWorkoutConfirmation(outcome))
	default:
		return b.sendHTML(msg.Chat.ID, "❌ I couldn't understand that. Try rephrasing, or /help for examples.")
	}
}

// replyError maps the error taxonomy onto user-facing replies:
// validation failures name the field, classification failures get a
// generic "couldn't understand", everything else is transient.
func (b *Bot) replyError(chatID, telegramID int64, err error) error {
	var vErr *classifier.ValidationError
	switch {
	case errors.As(err, &vErr):
		b.metrics.ErrorsTotal.WithLabelValues("validation").Inc()
		return b.sendHTML(chatID, fmt.Sprintf("❌ I couldn't save that: missing %s.", escape(vErr.Field)))
	case errors.Is(err, classifier.ErrUnclassified):
		b.metrics.ErrorsTotal.WithLabelValues("classification").Inc()
		return b.sendHTML(chatID, "❌ I couldn't understand that. Try rephrasing, or /help for examples.")
	default:
		b.metrics.ErrorsTotal.WithLabelValues("transient").Inc()
		b.log.Error("transient failure", "telegram_id", telegramID, "error", err.Error())
		return b.sendHTML(chatID, "❌ Something went wrong on my side. Please try again.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	return b.sendHTML(msg.Chat.ID,
		"👋 <b>Welcome to Lifelog!</b>\n\n"+
			"Just send me a message and I'll figure out what to do:\n"+
			"📝 Save notes &amp; brain dumps\n"+
			"🍽 Log meals with macro estimates\n"+
			"💪 Track workouts\n"+
			"💬 Answer your health &amp; fitness questions\n\n"+
			"<b>Commands:</b>\n"+
			"/notes — recent notes\n"+
			"/notes &lt;keyword&gt; — search notes\n"+
			"/notes today / week / yesterday\n"+
			"/summary — today's stats\n"+
			"/profile — your settings\n"+
			"/help — this message\n\n"+
			"<b>Examples:</b>\n"+
			"• <i>Had eggs and toast for breakfast</i>\n"+
			"• <i>30 min run this morning</i>\n"+
			"• <i>Remember to call the dentist tomorrow</i>\n"+
			"• <i>How many calories in a banana?</i>")
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendHTML(msg.Chat.ID,
		"🤖 <b>Lifelog Help</b>\n\n"+
			"<b>What I save automatically:</b>\n"+
			"• Food logs → <i>had pizza for dinner</i>\n"+
			"• Workouts → <i>45 min gym session</i>\n"+
			"• Notes / reminders → <i>remember to call dentist</i>\n\n"+
			"<b>What I answer directly:</b>\n"+
			"• Nutrition questions → <i>how many calories in X?</i>\n"+
			"• Fitness advice → <i>good protein goal for my weight?</i>\n\n"+
			"<b>Commands:</b>\n"+
			"/notes — last 10 notes\n"+
			"/notes dentist — search by keyword\n"+
			"/notes today / yesterday / week / month\n"+
			"/summary — today's calorie &amp; workout report\n"+
			"/profile — view settings\n"+
			"/setweight 80 — current weight (kg)\n"+
			"/setgoal 75 — goal weight (kg)\n"+
			"/settarget 2000 — daily calorie target")
}

func (b *Bot) handleNotes(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	b.sendTyping(msg.Chat.ID)

	arg := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	now := time.Now()
	today, tomorrow := dayRange(now)

	var notes []model.Note
	var header string

	switch arg {
	case "":
		notes, err = b.noteRepo.ListRecent(ctx, user.ID, recentNotesLimit)
		header = "📝 <b>Your last 10 notes</b>"
	case "today":
		notes, err = b.noteRepo.ListBetween(ctx, user.ID, today, tomorrow)
		header = fmt.Sprintf("📝 <b>Notes from today</b> (%s)", today.Format("January 02"))
	case "yesterday":
		yStart, yEnd := dayRange(now.AddDate(0, 0, -1))
		notes, err = b.noteRepo.ListBetween(ctx, user.ID, yStart, yEnd)
		header = fmt.Sprintf("📝 <b>Notes from yesterday</b> (%s)", yStart.Format("January 02"))
	case "week", "this week":
		notes, err = b.noteRepo.ListBetween(ctx, user.ID, today.AddDate(0, 0, -7), tomorrow)
		header = "📝 <b>Notes — last 7 days</b>"
	case "month", "this month":
		notes, err = b.noteRepo.ListBetween(ctx, user.ID, today.AddDate(0, 0, -30), tomorrow)
		header = "📝 <b>Notes — last 30 days</b>"
	default:
		notes, err = b.noteRepo.Search(ctx, user.ID, arg, searchNotesLimit)
		header = fmt.Sprintf("🔍 <b>Notes matching %q</b>", arg)
	}
	if err != nil {
		b.log.Error("fetch notes", "telegram_id", user.TelegramID, "error", err.Error())
		return b.sendHTML(msg.Chat.ID, "❌ Couldn't fetch notes. Please try again.")
	}

	return b.sendHTML(msg.Chat.ID, formatNoteList(header, notes))
}

func (b *Bot) handleSummary(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	b.sendTyping(msg.Chat.ID)

	sum, err := b.summarySvc.Daily(ctx, user, time.Now())
	if err != nil {
		b.log.Error("build summary", "telegram_id", user.TelegramID, "error", err.Error())
		return b.sendHTML(msg.Chat.ID, "❌ Couldn't generate summary. Please try again.")
	}

	return b.sendHTML(msg.Chat.ID, formatDailySummary(sum, user))
}

func (b *Bot) handleProfile(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.sendHTML(msg.Chat.ID, formatProfile(user))
}

func (b *Bot) handleSetGoal(ctx context.Context, msg *tgbotapi.Message) error {
	weight, ok := parseWeightArg(msg.CommandArguments())
	if !ok {
		return b.sendHTML(msg.Chat.ID, "❌ Invalid weight. Example: <code>/setgoal 75</code>")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	if _, err := b.userRepo.UpdateProfile(ctx, user.ID, repository.ProfileUpdate{GoalWeight: &weight}); err != nil {
		return b.sendHTML(msg.Chat.ID, "❌ Couldn't update your profile. Please try again.")
	}
	return b.sendHTML(msg.Chat.ID, fmt.Sprintf("✅ Goal weight set to <b>%.1f kg</b>", weight))
}

func (b *Bot) handleSetWeight(ctx context.Context, msg *tgbotapi.Message) error {
	weight, ok := parseWeightArg(msg.CommandArguments())
	if !ok {
		return b.sendHTML(msg.Chat.ID, "❌ Invalid weight. Example: <code>/setweight 80</code>")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	if _, err := b.userRepo.UpdateProfile(ctx, user.ID, repository.ProfileUpdate{CurrentWeight: &weight}); err != nil {
		return b.sendHTML(msg.Chat.ID, "❌ Couldn't update your profile. Please try again.")
	}
	return b.sendHTML(msg.Chat.ID, fmt.Sprintf("✅ Current weight set to <b>%.1f kg</b>", weight))
}

func (b *Bot) handleSetTarget(ctx context.Context, msg *tgbotapi.Message) error {
	arg := strings.TrimSpace(msg.CommandArguments())
	target, err := strconv.Atoi(arg)
	if err != nil || target < 500 || target > 5000 {
		return b.sendHTML(msg.Chat.ID, "❌ Must be 500–5000. Example: <code>/settarget 2000</code>")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	if _, err := b.userRepo.UpdateProfile(ctx, user.ID, repository.ProfileUpdate{DailyCalorieTarget: &target}); err != nil {
		return b.sendHTML(msg.Chat.ID, "❌ Couldn't update your profile. Please try again.")
	}
	return b.sendHTML(msg.Chat.ID, fmt.Sprintf("✅ Daily calorie target set to <b>%d kcal</b>", target))
}

// SendDailyReports pushes the daily summary to every known user.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		user := &users[i]
		sum, err := b.summarySvc.Daily(ctx, user, now)
		if err != nil {
			b.log.Warn("build daily report", "telegram_id", user.TelegramID, "error", err.Error())
			continue
		}
		text := formatDailySummary(sum, user)
		if narrative := b.summarySvc.Narrative(ctx, sum); narrative != "" {
			text += "\n\n" + escape(narrative)
		}
		if err := b.sendHTML(user.TelegramID, text); err != nil {
			b.log.Warn("send daily report", "telegram_id", user.TelegramID, "error", err.Error())
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.Debug("send typing action", "error", err.Error())
	}
}

func (b *Bot) sendHTML(chatID int64, text string) error {
	for _, part := range chunks(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// sendPlain skips the parse mode; model answers may contain characters
// Telegram would reject as broken markup.
func (b *Bot) sendPlain(chatID int64, text string) error {
	for _, part := range chunks(text) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			return err
		}
	}
	return nil
}

func parseWeightArg(arg string) (float64, bool) {
	w, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil || w <= 20 || w >= 300 {
		return 0, false
	}
	return w, true
}

// dayRange returns [start, end) of the local day containing t.
func dayRange(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
