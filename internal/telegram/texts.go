package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Menu button labels double as routing keys for plain-text messages.
const (
	btnFindNearest = "🔍 Find nearest user"
	btnSetReminder = "⏰ Set a reminder"
	btnShareLoc    = "📍 Share location"
)

const (
	startFmt = "👋 Hi, %s! To register, share your location with the button below."

	locationSavedText = "✅ Location saved! You can now look up the nearest user."

	notRegisteredText = "⚠️ You are not registered yet. Share your location via /start first."
	noOtherUsersText  = "ℹ️ No other registered users yet."
	nearestFmt        = "👤 Nearest user: %s (ID: %d)\n📏 Distance: %.2f km"

	askReminderText     = "⌛ Enter a time as HH:MM"
	reminderSetFmt      = "✅ Your reminder is set for %s!"
	badTimeFormatText   = "⚠️ Wrong time format. Enter it as HH:MM."
	timeOutOfRangeText  = "⚠️ That time does not exist. Hours go 00–23, minutes 00–59."
	statusFmt           = "🧾 %s\n• Location: %.4f, %.4f\n• Reminder: %s"
	statusNoReminder    = "—"
	internalProblemText = "Something went wrong. Please try again later."
)

// mainMenuKeyboard builds the persistent reply keyboard. The location button
// asks Telegram to attach the user's coordinates.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(btnShareLoc),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFindNearest),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSetReminder),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
