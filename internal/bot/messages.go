package bot

// All user-facing bot messages in one place.

// ── /start & /help ──────────────────────────────────────────────────

const msgStart = `<b>Welcome to ESP Monitor!</b>

I watch the EskomSePush status feed and post to the channel whenever the load-shedding stage changes.

/status - Current stage for Eskom and Cape Town
/search - Find an area by name
/nearby - Find areas around an address
/help - More details`

const msgHelp = `<b>How it works:</b>

1. Every few minutes I check the national and Cape Town stages
2. When a stage changes I post the new stage and what is scheduled next
3. Stage 0 means load shedding is suspended

<b>Commands:</b>
/status — current stage per region
/search &lt;text&gt; — look up an area and its ID
/nearby &lt;address&gt; — areas around a street address`

// ── Generic / errors ────────────────────────────────────────────────

const (
	msgError           = "Something went wrong. Try again later."
	msgSearchUsage     = "Usage: /search &lt;area name&gt;"
	msgNearbyUsage     = "Usage: /nearby &lt;street address&gt;"
	msgNoAreas         = "No areas found."
	msgAddressNotFound = "Address not found."
)

// ── Stage labels ────────────────────────────────────────────────────

const (
	msgStageSuspended = "suspended"
	msgStageN         = "stage %s"
	msgStageUnknown   = "unknown"
)

// ── Notifications ───────────────────────────────────────────────────

const (
	msgNotifyStageUp       = "🔴 <b>%s</b>: load shedding %s"
	msgNotifyStageOff      = "🟢 <b>%s</b>: load shedding %s"
	msgNotifyPrevious      = "\nWas: %s"
	msgNotifySince         = "\nAnnounced at %s"
	msgNotifyUpcomingTitle = "\n\n<b>Upcoming:</b>"
	msgNotifyUpcomingLine  = "\n• %s: %s"
)

// ── /status & /search ───────────────────────────────────────────────

const (
	msgStatusHeader = "<b>Load-shedding status</b>\n"
	msgStatusLine   = "\n%s: <b>%s</b>"
	msgSearchHeader = "<b>Areas</b>\n"
	msgSearchLine   = "\n%s (%s)\n<code>%s</code>"
	msgNearbyHeader = "<b>Areas near %s</b>\n"
)
