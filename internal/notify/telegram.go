package notify

import (
	"fmt"
	"log"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramAlerter sends approval alerts to supervisors. It is outbound only:
// staff act through the HTTP API, never through the bot.
type TelegramAlerter struct {
	BotAPI  *tgbotapi.BotAPI
	Storage storage.Storage
}

// NewTelegramAlerter authorizes the bot with the given token.
func NewTelegramAlerter(token string, s storage.Storage) (*TelegramAlerter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Alert bot authorized on account %s", bot.Self.UserName)

	return &TelegramAlerter{BotAPI: bot, Storage: s}, nil
}

// Alert notifies every approver of the owning department when a complaint
// enters awaiting_approval. Other events are ignored.
func (t *TelegramAlerter) Alert(ev models.WorkflowEvent) {
	if ev.Status != models.StatusAwaitingApproval {
		return
	}

	approvers, err := t.Storage.ListApproversForDepartment(ev.Department)
	if err != nil {
		log.Printf("ERROR: Failed to load approvers for %s: %v", ev.Department, err)
		return
	}

	text := fmt.Sprintf("Complaint %s is awaiting %s approval (routed by %s).",
		ev.ComplaintID, ev.Department, ev.ActorName)

	for _, approver := range approvers {
		if approver.TelegramChatID == 0 {
			continue
		}
		msg := tgbotapi.NewMessage(approver.TelegramChatID, text)
		if _, err := t.BotAPI.Send(msg); err != nil {
			log.Printf("ERROR: Failed to alert approver %s: %v", approver.ID, err)
		}
	}
}
