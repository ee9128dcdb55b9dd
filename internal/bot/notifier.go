package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"esp-monitor/internal/mq"
)

// Sender is satisfied by *tele.Bot.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramNotifier posts stage changes to a Telegram channel.
type TelegramNotifier struct {
	sender    Sender
	channelID int64
	loc       *time.Location
	log       *zap.Logger
}

func NewNotifier(s Sender, channelID int64, log *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: s, channelID: channelID, loc: Location(), log: log}
}

// NotifyStageChange sends a stage-change message to the channel.
func (n *TelegramNotifier) NotifyStageChange(msg mq.StageChangeMsg) error {
	chat := &tele.Chat{ID: n.channelID}
	if _, err := n.sender.Send(chat, FormatStageChange(msg, n.loc), htmlOpts); err != nil {
		return fmt.Errorf("send to channel %d: %w", n.channelID, err)
	}
	n.log.Info("stage change sent",
		zap.String("region", msg.Region),
		zap.String("stage", msg.Stage),
		zap.Int64("channel", n.channelID),
	)
	return nil
}

// FormatStageChange renders a stage change as an HTML message with times in loc.
func FormatStageChange(msg mq.StageChangeMsg, loc *time.Location) string {
	var bld strings.Builder

	name := html.EscapeString(msg.Name)
	if msg.Stage == "0" {
		fmt.Fprintf(&bld, msgNotifyStageOff, name, stageLabel(msg.Stage))
	} else {
		fmt.Fprintf(&bld, msgNotifyStageUp, name, stageLabel(msg.Stage))
	}

	if msg.PreviousStage != "" {
		fmt.Fprintf(&bld, msgNotifyPrevious, stageLabel(msg.PreviousStage))
	}
	if !msg.StageUpdated.IsZero() {
		fmt.Fprintf(&bld, msgNotifySince, msg.StageUpdated.In(loc).Format("Mon 02 Jan 15:04"))
	}

	if len(msg.NextStages) > 0 {
		bld.WriteString(msgNotifyUpcomingTitle)
		for _, s := range msg.NextStages {
			fmt.Fprintf(&bld, msgNotifyUpcomingLine,
				s.Starts.In(loc).Format("Mon 15:04"), stageLabel(strconv.Itoa(s.Stage)))
		}
	}

	return bld.String()
}

// stageLabel turns a raw stage value into display text.
func stageLabel(stage string) string {
	switch stage {
	case "":
		return msgStageUnknown
	case "0":
		return msgStageSuspended
	}
	return fmt.Sprintf(msgStageN, html.EscapeString(stage))
}

// Location returns South African Standard Time, falling back to a fixed
// zone when the tz database is unavailable.
func Location() *time.Location {
	loc, err := time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		return time.FixedZone("SAST", 2*60*60)
	}
	return loc
}
