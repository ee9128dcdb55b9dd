package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"esp-monitor/pkg/esp"
)

// ── Simple commands ──────────────────────────────────────────────────

func (b *Bot) handleStart(c tele.Context) error {
	b.logCommand(c, "/start")
	return c.Send(msgStart, htmlOpts)
}

func (b *Bot) handleHelp(c tele.Context) error {
	b.logCommand(c, "/help")
	return c.Send(msgHelp, htmlOpts)
}

// ── /status ──────────────────────────────────────────────────────────

func (b *Bot) handleStatus(c tele.Context) error {
	b.logCommand(c, "/status")
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	status, err := b.api.FetchStatus(ctx)
	if err != nil {
		b.log.Error("fetch status", zap.Error(err))
		return c.Send(msgError)
	}
	return c.Send(FormatStatus(status), htmlOpts)
}

// FormatStatus renders the current stage of every region.
func FormatStatus(status *esp.NestedStatus) string {
	var bld strings.Builder
	bld.WriteString(msgStatusHeader)
	for _, r := range []esp.StatusRegion{status.Eskom, status.CapeTown} {
		fmt.Fprintf(&bld, msgStatusLine, html.EscapeString(r.Name), stageLabel(r.Stage))
	}
	return bld.String()
}

// ── /search ──────────────────────────────────────────────────────────

func (b *Bot) handleSearch(c tele.Context) error {
	b.logCommand(c, "/search")
	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return c.Send(msgSearchUsage, htmlOpts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := b.api.SearchAreas(ctx, text)
	if err != nil {
		b.log.Error("search areas", zap.String("text", text), zap.Error(err))
		return c.Send(msgError)
	}
	return c.Send(FormatSearch(result), htmlOpts)
}

// maxSearchResults keeps replies under Telegram's message size limit.
const maxSearchResults = 10

// FormatSearch renders search hits with their area IDs.
func FormatSearch(result *esp.AreaSearch) string {
	if len(result.Areas) == 0 {
		return msgNoAreas
	}
	var bld strings.Builder
	bld.WriteString(msgSearchHeader)
	for i, a := range result.Areas {
		if i == maxSearchResults {
			break
		}
		fmt.Fprintf(&bld, msgSearchLine,
			html.EscapeString(a.Name), html.EscapeString(a.Region), html.EscapeString(a.ID))
	}
	return bld.String()
}

// ── /nearby ──────────────────────────────────────────────────────────

func (b *Bot) handleNearby(c tele.Context) error {
	b.logCommand(c, "/nearby")
	address := strings.TrimSpace(c.Message().Payload)
	if address == "" {
		return c.Send(msgNearbyUsage, htmlOpts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	place, err := b.geo.Search(ctx, address)
	if err != nil {
		b.log.Error("geocode", zap.String("address", address), zap.Error(err))
		return c.Send(msgError)
	}
	if place == nil {
		return c.Send(msgAddressNotFound)
	}

	result, err := b.api.FetchNearbyAreas(ctx, place.Latitude, place.Longitude)
	if err != nil {
		b.log.Error("nearby areas", zap.Error(err))
		return c.Send(msgError)
	}
	return c.Send(FormatNearby(place.DisplayName, result), htmlOpts)
}

// FormatNearby renders areas around a resolved address.
func FormatNearby(place string, result *esp.NearbyArea) string {
	if len(result.Areas) == 0 {
		return msgNoAreas
	}
	var bld strings.Builder
	fmt.Fprintf(&bld, msgNearbyHeader, html.EscapeString(place))
	for i, a := range result.Areas {
		if i == maxSearchResults {
			break
		}
		fmt.Fprintf(&bld, msgSearchLine,
			html.EscapeString(a.Name), html.EscapeString(a.Region), html.EscapeString(a.ID))
	}
	return bld.String()
}

func (b *Bot) logCommand(c tele.Context, cmd string) {
	sender := c.Sender()
	if sender == nil {
		return
	}
	b.log.Info("command", zap.String("cmd", cmd), zap.Int64("user", sender.ID), zap.String("username", sender.Username))
}
