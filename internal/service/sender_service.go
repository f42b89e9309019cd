package service

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"studiobooking/internal/db"
	"studiobooking/internal/entities"
)

// SenderService sends operator notifications: a summary mail when a recurring
// group is created and a report mail after each materializer run. Sending is
// fire-and-forget; a failed notification never fails the operation behind it.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendGroupCreatedEmail(group db.RecurringGroup, members []db.Booking) {
	operatorEmail := os.Getenv("OPERATOR_EMAIL")
	if operatorEmail == "" {
		return
	}

	subject := fmt.Sprintf("Recurring booking group #%d created (%d sessions)", group.ID, len(members))

	var body strings.Builder
	fmt.Fprintf(&body, "A new recurring booking group was created.\n\n")
	fmt.Fprintf(&body, "Pattern: %s\n\n", entities.GroupSummary(group))
	fmt.Fprintf(&body, "Sessions:\n")
	for _, b := range members {
		fmt.Fprintf(&body, "  #%d  %s\n", b.ID, entities.BookingSummary(b))
	}

	go func(subject, body string) {
		if err := SendEmailWithSendGrid(operatorEmail, "Operator", subject, body); err != nil {
			log.Printf("ALERT (async): group %d summary email failed: %v", group.ID, err)
		}
	}(subject, body.String())
}

func (s *SenderService) SendMaterializerReport(day time.Time, created []db.Booking, failures int) {
	operatorEmail := os.Getenv("OPERATOR_EMAIL")
	if operatorEmail != "" && len(created) > 0 {
		subject := fmt.Sprintf("Daily materialization for %s: %d bookings", day.Format("2006-01-02"), len(created))

		var body strings.Builder
		fmt.Fprintf(&body, "The daily scheduler created %d bookings for %s.\n\n", len(created), day.Format("2006-01-02"))
		for _, b := range created {
			fmt.Fprintf(&body, "  #%d  %s\n", b.ID, entities.BookingSummary(b))
		}
		if failures > 0 {
			fmt.Fprintf(&body, "\n%d schedules failed; see the server log.\n", failures)
		}

		go func(subject, body string) {
			if err := SendEmailWithSendGrid(operatorEmail, "Operator", subject, body); err != nil {
				log.Printf("ALERT (async): materializer report email failed: %v", err)
			}
		}(subject, body.String())
	}

	operatorPhone := os.Getenv("OPERATOR_PHONE")
	if operatorPhone != "" && failures > 0 {
		message := fmt.Sprintf("Studio Booking: daily scheduler for %s had %d failing schedules. Check the server log.",
			day.Format("2006-01-02"), failures)
		if err := SendSMS(operatorPhone, message); err != nil {
			log.Printf("ALERT: materializer failure SMS could not be sent: %v", err)
		}
	}
}
