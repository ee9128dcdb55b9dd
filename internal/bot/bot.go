package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"esp-monitor/internal/geocode"
	"esp-monitor/pkg/esp"
)

// API is the part of the ESP client the bot commands use.
type API interface {
	FetchStatus(ctx context.Context) (*esp.NestedStatus, error)
	SearchAreas(ctx context.Context, text string) (*esp.AreaSearch, error)
	FetchNearbyAreas(ctx context.Context, lat, lon float64) (*esp.NearbyArea, error)
}

// Geocoder resolves an address for /nearby.
type Geocoder interface {
	Search(ctx context.Context, query string) (*geocode.Result, error)
}

// Bot wraps the Telegram bot and its command handlers.
type Bot struct {
	bot *tele.Bot
	api API
	geo Geocoder
	loc *time.Location
	log *zap.Logger
}

var htmlOpts = &tele.SendOptions{ParseMode: tele.ModeHTML}

// requestTimeout bounds a single ESP call made from a command handler.
const requestTimeout = 15 * time.Second

// New creates and configures the Telegram bot.
func New(token string, api API, geo Geocoder, log *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := &Bot{
		bot: b,
		api: api,
		geo: geo,
		loc: Location(),
		log: log,
	}

	bot.registerHandlers()

	if err := b.SetCommands([]tele.Command{
		{Text: "status", Description: "Current load-shedding stage"},
		{Text: "search", Description: "Find an area by name"},
		{Text: "nearby", Description: "Find areas around an address"},
		{Text: "help", Description: "How it works"},
	}); err != nil {
		log.Warn("failed to set commands", zap.Error(err))
	}

	return bot, nil
}

// Start begins polling for Telegram updates. Call as a goroutine.
func (b *Bot) Start() {
	b.log.Info("starting Telegram bot polling")
	b.bot.Start()
}

// Stop gracefully stops the bot.
func (b *Bot) Stop() {
	b.bot.Stop()
}

// TeleBot returns the underlying telebot instance (used by the notifier).
func (b *Bot) TeleBot() *tele.Bot {
	return b.bot
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/help", b.handleHelp)
	b.bot.Handle("/status", b.handleStatus)
	b.bot.Handle("/search", b.handleSearch)
	b.bot.Handle("/nearby", b.handleNearby)
}
