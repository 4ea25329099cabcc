package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/moneta-dev/moneta/internal/alert"
)

// BillReminder is the payload for an upcoming bill notification.
type BillReminder struct {
	BillName  string
	Amount    int64 // Amount in cents
	DueDate   time.Time
	DaysToDue int
}

// BudgetAlertBody creates a formatted email body for a budget alert.
func BudgetAlertBody(a alert.BudgetAlert) string {
	var sb strings.Builder

	if a.IsExceeded {
		sb.WriteString(fmt.Sprintf("Your %s budget is spent.\n\n", a.CategoryName))
	} else {
		sb.WriteString(fmt.Sprintf("Your %s budget reached %.0f%% of its limit.\n\n", a.CategoryName, a.PercentSpent))
	}

	sb.WriteString(fmt.Sprintf("* Budget: %.2f €\n", float64(a.BudgetAmount)/100.0))
	sb.WriteString(fmt.Sprintf("* Spent: %.2f € (%.1f%%)\n", float64(a.SpentAmount)/100.0, a.PercentSpent))

	remaining := a.BudgetAmount - a.SpentAmount
	if remaining >= 0 {
		sb.WriteString(fmt.Sprintf("* Remaining: %.2f €\n", float64(remaining)/100.0))
	} else {
		sb.WriteString(fmt.Sprintf("* Over budget by: %.2f €\n", float64(-remaining)/100.0))
	}

	return sb.String()
}

// BillReminderBody creates a formatted email body for a bill reminder.
func BillReminderBody(r BillReminder) string {
	var sb strings.Builder

	switch {
	case r.DaysToDue <= 0:
		sb.WriteString(fmt.Sprintf("%s is due today.\n\n", r.BillName))
	case r.DaysToDue == 1:
		sb.WriteString(fmt.Sprintf("%s is due tomorrow.\n\n", r.BillName))
	default:
		sb.WriteString(fmt.Sprintf("%s is due in %d days.\n\n", r.BillName, r.DaysToDue))
	}

	sb.WriteString(fmt.Sprintf("* Due: %s\n", r.DueDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("* Amount: %.2f €\n", float64(r.Amount)/100.0))

	return sb.String()
}

func budgetAlertSubject(a alert.BudgetAlert) string {
	if a.IsExceeded {
		return "Budget exceeded: " + a.CategoryName
	}

	return fmt.Sprintf("Budget alert: %s at %.0f%%", a.CategoryName, a.PercentSpent)
}

func billReminderSubject(r BillReminder) string {
	return "Upcoming bill: " + r.BillName
}
