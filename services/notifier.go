package services

import (
	"context"

	"hotel-management/models"
	"hotel-management/utils"
)

// Notifier is told about reservations after they commit.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, guest models.Guest, res models.Reservation) error
}

// EmailNotifier sends the confirmation email. Without SMTP settings the mail
// is only logged.
type EmailNotifier struct {
	Mail        utils.MailConfig
	FrontendURL string
}

func NewEmailNotifier(mail utils.MailConfig, frontendURL string) *EmailNotifier {
	return &EmailNotifier{Mail: mail, FrontendURL: frontendURL}
}

func (n *EmailNotifier) ReservationConfirmed(_ context.Context, guest models.Guest, res models.Reservation) error {
	if guest.Email == "" {
		return nil
	}
	rooms := make([]utils.RoomInfo, 0, len(res.Rooms))
	for _, rr := range res.Rooms {
		rooms = append(rooms, utils.RoomInfo{Number: rr.RoomNumber, Type: rr.RoomType})
	}
	return utils.SendReservationConfirmationEmail(n.Mail, utils.ReservationEmail{
		To:            guest.Email,
		GuestName:     guest.FullName(),
		ReferenceCode: res.ReferenceCode,
		Rooms:         rooms,
		CheckIn:       res.CheckInDate.Format(dateLayout),
		CheckOut:      res.CheckOutDate.Format(dateLayout),
		Link:          utils.BuildReservationLink(n.FrontendURL, res.ReferenceCode),
	})
}
