package notifications

import (
	"context"
	"fmt"

	"becayis-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBNotifier implements matching.Notifier by writing one in-app notification
// row per participant. Notification is a side channel: every failure is
// logged and swallowed so the triggering operation never fails here.
type DBNotifier struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDBNotifier(db *gorm.DB, log *zap.Logger) *DBNotifier {
	return &DBNotifier{db: db, log: log}
}

func (n *DBNotifier) MatchCreated(ctx context.Context, match *models.Match) {
	body := fmt.Sprintf("Becayiş talebiniz için %%%d uyumlu bir eşleşme bulundu.", int(match.Score*100))
	n.write(ctx, match, models.NotificationTypeMatchCreated, "Yeni eşleşme!", body, match.UserIdA, match.UserIdB)
}

// MatchTransitioned notifies only the counterpart; the acting user triggered
// the change themselves.
func (n *DBNotifier) MatchTransitioned(ctx context.Context, match *models.Match, actingUserId string) {
	title := "Eşleşme reddedildi"
	if match.Status == models.MatchStatusAccepted {
		title = "Eşleşme kabul edildi"
	}
	counterpart := match.UserIdA
	if actingUserId == match.UserIdA {
		counterpart = match.UserIdB
	}
	body := fmt.Sprintf("Eşleşmenizin durumu güncellendi: %s.", match.Status)
	n.write(ctx, match, models.NotificationTypeMatchTransitioned, title, body, counterpart)
}

func (n *DBNotifier) write(ctx context.Context, match *models.Match, kind, title, body string, userIds ...string) {
	for _, userId := range userIds {
		notification := models.Notification{
			UserId:  userId,
			Type:    kind,
			Title:   title,
			Body:    body,
			MatchId: match.Id,
		}
		if err := n.db.WithContext(ctx).Create(&notification).Error; err != nil {
			n.log.Warn("notification write failed",
				zap.String("matchId", match.Id),
				zap.String("userId", userId),
				zap.Error(err))
		}
	}
}
