package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskman/internal/models"
)

// TelegramService posts task event notifications to a configured chat.
// A nil service (missing token) silently skips sending.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) NotifyTask(prefix string, task *models.Task) {
	if t == nil || t.bot == nil || task == nil {
		return
	}
	text := prefix + "\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Status: <code>" + task.StatusSlug + "</code>\n" +
		"• Labels: <code>" + fmt.Sprint(task.LabelIDs) + "</code>"

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
	}
}
